// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import "strings"

// Normalize canonicalizes the string fields. It must be called after
// Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Bus = strings.TrimSpace(cfg.Bus)
	cfg.Output.Serial = strings.TrimSpace(cfg.Output.Serial)
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
}
