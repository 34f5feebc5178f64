// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/GermanBionicSystems/sbsmon/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the battery report once",
	Long: `Read the pack identification and one telemetry snapshot, then print the
full report on stdout or on a serial port.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	opts.registerOutput(reportCmd.Flags())
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	b, err := openBus()
	if err != nil {
		return err
	}
	defer b.Close()
	batt, err := openBattery(b)
	if err != nil {
		return err
	}
	info, err := batt.ReadInfo()
	if err != nil {
		return err
	}
	s, err := batt.Poll()
	if err != nil {
		return err
	}
	out, _, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()
	return report.Write(out, &info, &s, cfg.Battery.CurrentFactor)
}
