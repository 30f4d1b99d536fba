package config

import (
	"time"
)

// Config is the effective dotlink configuration.
type Config struct {
	Exclude []string      `koanf:"exclude"`
	Hooks   HooksConfig   `koanf:"hooks"`
	Link    LinkConfig    `koanf:"link"`
	Logging LoggingConfig `koanf:"logging"`
	Output  OutputConfig  `koanf:"output"`
}

// HooksConfig controls how hook scripts are executed.
type HooksConfig struct {
	Shell     string        `koanf:"shell"`
	ShellFlag string        `koanf:"shell_flag"`
	Timeout   time.Duration `koanf:"timeout"`
}

// LinkConfig holds the default conflict policies.
type LinkConfig struct {
	Force bool `koanf:"force"`
	Adopt bool `koanf:"adopt"`
}

type LoggingConfig struct {
	Verbosity int `koanf:"verbosity"`
}

// OutputConfig selects the report format.
type OutputConfig struct {
	Format string `koanf:"format"`
	Color  string `koanf:"color"`
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
