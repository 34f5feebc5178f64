// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the battery continuously",
	Long: `Poll the battery at a fixed interval until interrupted.

Each snapshot is printed as text or as a CBOR sequence. With --display the
summary is shown on the SSD1306 panel; --term emulates the panel on the
console instead of printing text.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	opts.registerOutput(watchCmd.Flags())
	opts.registerWatch(watchCmd.Flags())
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	b, err := openBus()
	if err != nil {
		return err
	}
	defer b.Close()
	batt, err := openBattery(b)
	if err != nil {
		return err
	}
	var p panel
	if cfg.Display.Enabled || opts.term {
		if p, err = openPanel(b, opts.term); err != nil {
			return err
		}
		defer p.Halt()
	}
	out, tty, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()
	printing := printsText(cfg, opts.term)
	w := newSnapshotWriter(out, cfg.Output.Format, tty, cfg.Battery.CurrentFactor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	t := time.NewTicker(cfg.Interval())
	defer t.Stop()
	for {
		s, err := batt.Poll()
		if err != nil {
			log.Printf("poll failed: %v", err)
		} else {
			if printing {
				if err := w.write(time.Now(), &s); err != nil {
					return err
				}
			}
			if p != nil {
				if err := showSummary(p, &s); err != nil {
					log.Printf("display update failed: %v", err)
				}
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
