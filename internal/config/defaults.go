package config

import (
	_ "embed"
)

//go:embed defaults/rps.yaml
var defaultRPSYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRPSYAML
}
