package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix starts every environment override. A double underscore separates
// key levels: DOTLINK_HOOKS__SHELL_FLAG sets hooks.shell_flag.
const EnvPrefix = "DOTLINK_"

// FileNames are the config files looked up at the source root, in order.
var FileNames = []string{".dotlink.toml", ".dotlink.yaml", ".dotlink.yml"}

// Load builds the configuration for the source tree at sourceRoot. An empty
// sourceRoot skips the file layer. overrides are flattened keys such as
// "link.force" and win over every other layer.
func Load(sourceRoot string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Root config file
	if path := FindFile(sourceRoot); path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the embedded configuration.
func Defaults() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return decode(k)
}

// FindFile returns the first config file present at sourceRoot, or "".
func FindFile(sourceRoot string) string {
	if sourceRoot == "" {
		return ""
	}
	for _, name := range FileNames {
		path := filepath.Join(sourceRoot, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Validate rejects values outside the known enumerations.
func (c *Config) Validate() error {
	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML}, c.Output.Format) {
		return errors.Newf(errors.ErrConfigParse, "unknown output format %q", c.Output.Format).
			WithDetail("key", "output.format")
	}
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Output.Color) {
		return errors.Newf(errors.ErrConfigParse, "unknown color mode %q", c.Output.Color).
			WithDetail("key", "output.color")
	}
	if c.Logging.Verbosity < 0 {
		return errors.New(errors.ErrConfigParse, "logging.verbosity must not be negative")
	}
	return nil
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
