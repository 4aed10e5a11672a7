// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package cli holds the home_display commands.
package cli

import (
	"errors"
	"io/fs"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/relabs-tech/home_display/internal/config"
)

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "home_display_config.txt"

// rootOptions holds the persistent flags of one command tree.
type rootOptions struct {
	configPath string
	noColor    bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "home_display",
		Short: "Home status display on an 8x8 LED matrix",
		Long: `home_display paints home automation events and a barometric weather
forecast onto an 8x8 grid of coloured cells.

Run 'home_display <command> --help' for details on each command.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", DefaultConfigPath, "KEY=VALUE configuration file")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newRunCmd(opts),
		newForecastCmd(),
		newLayoutCmd(opts),
		newMonitorCmd(opts),
		newSimulateCmd(),
	)
	return root
}

// Execute is the entry point called from main().
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig initialises the global config. A missing file falls back to the
// defaults unless required is set.
func (o *rootOptions) loadConfig(required bool) (*config.Config, error) {
	err := config.InitGlobal(o.configPath)
	if err == nil {
		return config.Get(), nil
	}
	if required || !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	log.Printf("cli: %s not found, using defaults", o.configPath)
	return config.Default(), nil
}
