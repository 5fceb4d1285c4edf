package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/util"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to environment overrides, e.g. STAMPWATCH_CAPACITY.
const EnvPrefix = "STAMPWATCH"

// DefaultConfigPath returns the expanded default config file location.
func DefaultConfigPath() string {
	return util.ExpandPath(constants.DefaultConfig)
}

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	path = util.ExpandPath(path)

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("capacity", cfg.Capacity)
	v.SetDefault("overflow", cfg.Overflow)
	v.SetDefault("time_format", cfg.TimeFormat)
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("store_path", cfg.StorePath)
	v.SetDefault("save_on_change", cfg.SaveOnChange)
	v.SetDefault("confirm_reset", cfg.ConfirmReset)
	v.SetDefault("bell", cfg.Bell)
	v.SetDefault("color", cfg.Color)
	v.SetDefault("tick_interval_ms", cfg.TickIntervalMs)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.format", cfg.Logging.Format)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		util.LogDebugf("no config file at %s, using defaults", path)
	} else if v.GetInt("config_version") != CurrentConfigVersion {
		return Config{}, fmt.Errorf("unsupported config_version %d; expected %d",
			v.GetInt("config_version"), CurrentConfigVersion)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.StorePath = util.ExpandPath(cfg.StorePath)
	cfg.Logging.File = util.ExpandPath(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	path = util.ExpandPath(path)

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}

	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
