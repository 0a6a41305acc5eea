// Package config loads blocktext options from layered sources: embedded
// defaults, an optional TOML or YAML file, BLOCKTEXT_* environment variables
// and explicit overrides.
package config
