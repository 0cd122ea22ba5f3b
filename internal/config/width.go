package config

import "strconv"

// Width resolution chain (highest priority first):
//   1. CLI flag (--width)
//   2. Environment variable (FRACALC_WIDTH)
//   3. Config file (width = ...)
//   4. Platform word size (this file)

// ApplyDefaultWidth fills in the integer width when none was configured.
// Only a zero width is replaced, so explicit choices are preserved.
func ApplyDefaultWidth(cfg AppConfig) AppConfig {
	if cfg.Width == 0 {
		cfg.Width = EstimateNativeWidth()
	}
	return cfg
}

// EstimateNativeWidth returns the bit size of the platform's int, which is
// the width arithmetic runs at without any narrowing or widening cost.
func EstimateNativeWidth() int {
	return strconv.IntSize
}
