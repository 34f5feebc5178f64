// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/GermanBionicSystems/sbsmon/internal/config"
	"github.com/spf13/cobra"
)

var (
	opts options

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sbsmon",
	Short: "Smart battery monitor",
	Long: `sbsmon - read a Smart Battery System gas gauge over SMBus.

The gauge is polled on an I²C bus of the host. Telemetry can be printed on
the console, sent to a serial port or shown on an SSD1306 OLED panel.

Settings come from the YAML file given with --config; flags override it.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	opts.registerRoot(rootCmd.PersistentFlags())
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := opts.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	cfg = c
	return nil
}
