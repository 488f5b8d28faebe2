package main

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"graphstate/internal/config"
	"graphstate/internal/logger"
	"graphstate/options"
	"graphstate/settings"
)

var (
	errDifferent       = errors.New("documents differ")
	errInvalidSettings = errors.New("invalid settings")
)

// registry holds the types a settings file may name. Decoded documents
// only hold builtin types and timestamps.
var registry = settings.NewRegistry(reflect.TypeFor[time.Time]())

// app is the state shared by the commands once flags are parsed.
type app struct {
	cfg *config.Config
	log *zap.Logger
	s   settings.MemberSettings
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "graphstate",
		Short: "Compare object graphs",
		Long: `graphstate compares YAML and JSON documents member by member, the
way the graphstate packages compare Go object graphs.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: console or json")
	flags.String("reference-handling", "", "reference handling: throw, references, structural or structural_with_reference_loops")
	flags.String("settings", "", "settings file")

	root.AddCommand(newDiffCmd(a), newEqualCmd(a), newSettingsCmd())

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return err
	}

	a.cfg, a.log = cfg, log

	return nil
}

// settings builds the member settings from the settings file and the
// reference handling override.
func (a *app) settings() (settings.MemberSettings, error) {
	if a.s != nil {
		return a.s, nil
	}

	extra := []settings.Option{settings.WithLogger(a.log)}

	if a.cfg.ReferenceHandling != "" {
		h, err := options.ParseReferenceHandling(a.cfg.ReferenceHandling)
		if err != nil {
			return nil, err
		}

		extra = append(extra, settings.WithReferenceHandling(h))
	}

	if a.cfg.Settings == "" {
		a.s = settings.Fields(extra...)
		return a.s, nil
	}

	f, err := settings.LoadFile(a.cfg.Settings)
	if err != nil {
		return nil, err
	}

	s, err := f.Settings(registry, extra...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.cfg.Settings, err)
	}

	a.log.Debug("settings loaded", zap.String("path", a.cfg.Settings), zap.Stringer("reference_handling", s.ReferenceHandling()))
	a.s = s

	return s, nil
}
