package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graphstate/settings"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Work with settings files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check FILE",
		Short: "Validate a settings file",
		Long:  `Parses a settings file and prints every problem found. The exit status is 1 when it has errors.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := settings.LoadFile(args[0])
			if err != nil {
				return err
			}

			d := settings.Validate(f, registry)
			out := cmd.OutOrStdout()

			for _, item := range d.All() {
				fmt.Fprintln(out, item)
			}

			if !d.IsValid() {
				return errInvalidSettings
			}

			fmt.Fprintf(out, "%s: ok\n", args[0])
			return nil
		},
	})

	return cmd
}
