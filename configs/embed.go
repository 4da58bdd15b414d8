// Package configs holds the configuration template shipped in the binary.
//
// `seroost config init` writes ConfigTemplate to the config file. Values in
// the template match the built-in defaults, so an untouched file changes
// nothing; see internal/config for the precedence of defaults, the file,
// SEROOST_* variables and flags.
package configs

import _ "embed"

// ConfigTemplate is the commented config.yaml written by `seroost config init`.
//
//go:embed config.example.yaml
var ConfigTemplate string
