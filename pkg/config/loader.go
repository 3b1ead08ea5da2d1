package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read as configuration
const EnvPrefix = "DOTTY_"

// LoadOptions selects the optional layers of a load
type LoadOptions struct {
	// ConfigFile replaces the default user file. It must exist.
	ConfigFile string

	// Overrides are dotted keys applied last, typically from flags
	Overrides map[string]interface{}
}

// UserConfigPath returns $XDG_CONFIG_HOME/dotty/config.toml
func UserConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "dotty", "config.toml")
	}
	return filepath.Join(xdg.ConfigHome, "dotty", "config.toml")
}

// Load builds the effective configuration. Layers, lowest first: embedded
// defaults, the user file, DOTTY_* environment variables, overrides.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	path := opts.ConfigFile
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path)
		}
	} else {
		path = UserConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	cfg.Restore.Mode = strings.ToLower(strings.TrimSpace(cfg.Restore.Mode))
	switch cfg.Restore.Mode {
	case ModeSymlinks, ModeFiles:
	default:
		return errors.Newf(errors.ErrInvalidInput,
			"restore.mode must be %q or %q, got %q", ModeSymlinks, ModeFiles, cfg.Restore.Mode)
	}

	if cfg.Manifest.File == "" || strings.ContainsRune(cfg.Manifest.File, filepath.Separator) {
		return errors.Newf(errors.ErrInvalidInput,
			"manifest.file must be a plain file name, got %q", cfg.Manifest.File)
	}
	return nil
}
