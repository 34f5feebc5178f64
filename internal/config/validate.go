// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: missing configuration")
	}

	// ---- battery ----
	b := cfg.Battery
	if b.Addr == 0 || b.Addr > 0x7F {
		return fmt.Errorf("config: battery.addr 0x%X is not a 7 bit address", b.Addr)
	}
	if b.SettleUs < 0 {
		return fmt.Errorf("config: battery.settle_us must not be negative, got %d", b.SettleUs)
	}
	if b.CurrentFactor <= 0 {
		return fmt.Errorf("config: battery.current_factor must be positive, got %g", b.CurrentFactor)
	}

	// ---- display ----
	if d := cfg.Display; d.Enabled {
		if d.Addr == 0 || d.Addr > 0x7F {
			return fmt.Errorf("config: display.addr 0x%X is not a 7 bit address", d.Addr)
		}
		if d.Addr == b.Addr {
			return fmt.Errorf("config: display.addr and battery.addr are both 0x%X", d.Addr)
		}
		if d.Width <= 0 || d.Height <= 0 {
			return fmt.Errorf("config: invalid display size %dx%d", d.Width, d.Height)
		}
	}

	// ---- poll ----
	if cfg.Poll.IntervalMs <= 0 {
		return fmt.Errorf("config: poll.interval_ms must be positive, got %d", cfg.Poll.IntervalMs)
	}

	// ---- output ----
	o := cfg.Output
	if f := strings.TrimSpace(o.Format); !strings.EqualFold(f, "text") && !strings.EqualFold(f, "cbor") {
		return fmt.Errorf("config: output.format must be text or cbor, got %q", o.Format)
	}
	if o.Serial != "" && o.Baud <= 0 {
		return fmt.Errorf("config: output.baud must be positive for serial port %q", o.Serial)
	}
	return nil
}
