package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"graphstate/diffby"
	"graphstate/equalby"
)

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff A B",
		Short: "Print the difference between two documents",
		Long:  `Prints the difference tree of two YAML or JSON documents. The exit status is 1 when they differ.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}

			docs, err := loadDocuments(cmd.Context(), args...)
			if err != nil {
				return err
			}

			d, err := diffby.FieldValuesWith(docs[0], docs[1], s)
			if err != nil {
				return err
			}

			if d.IsEmpty() {
				a.log.Debug("documents are equal", zap.Strings("paths", args))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), d)
			return errDifferent
		},
	}
}

func newEqualCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "equal A B",
		Short: "Report whether two documents are equal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}

			docs, err := loadDocuments(cmd.Context(), args...)
			if err != nil {
				return err
			}

			eq, err := equalby.FieldValuesWith(docs[0], docs[1], s)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), eq)
			return nil
		},
	}
}
