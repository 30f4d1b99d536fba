// Package config handles configuration management for dotlink.
// It layers embedded defaults, a config file at the source root, DOTLINK_
// environment variables and command-line overrides.
package config
