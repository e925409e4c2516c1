// Package configs embeds the configuration template written by
// `amangrep config init`.
package configs

import _ "embed"

// UserConfigTemplate is the commented template for
// ~/.config/amangrep/config.yaml. Every value is the built-in default.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
