package appconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/util"
)

// Config is the on-disk configuration file.
type Config struct {
	ConfigVersion  int           `mapstructure:"config_version" yaml:"config_version"`
	Capacity       int           `mapstructure:"capacity" yaml:"capacity"`
	Overflow       string        `mapstructure:"overflow" yaml:"overflow"`
	TimeFormat     string        `mapstructure:"time_format" yaml:"time_format"`
	Timezone       string        `mapstructure:"timezone" yaml:"timezone"`
	StorePath      string        `mapstructure:"store_path" yaml:"store_path"`
	SaveOnChange   bool          `mapstructure:"save_on_change" yaml:"save_on_change"`
	ConfirmReset   bool          `mapstructure:"confirm_reset" yaml:"confirm_reset"`
	Bell           bool          `mapstructure:"bell" yaml:"bell"`
	Color          bool          `mapstructure:"color" yaml:"color"`
	TickIntervalMs int           `mapstructure:"tick_interval_ms" yaml:"tick_interval_ms"`
	Logging        LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig controls the application log file.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	File   string `mapstructure:"file" yaml:"file"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		ConfigVersion:  CurrentConfigVersion,
		Capacity:       constants.DefaultCapacity,
		Overflow:       model.OverflowDrop.String(),
		TimeFormat:     model.Clock24h.String(),
		Timezone:       "Local",
		StorePath:      constants.DefaultStorePath,
		SaveOnChange:   true,
		ConfirmReset:   false,
		Bell:           true,
		Color:          true,
		TickIntervalMs: int(constants.DefaultTickInterval / time.Millisecond),
		Logging: LoggingConfig{
			Level:  "info",
			File:   constants.DefaultLogFile,
			Format: "text",
		},
	}
}

// TickInterval returns the header refresh interval
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// Validate rejects values the application cannot run with.
func (c Config) Validate() error {
	if c.Capacity < constants.MinCapacity || c.Capacity > constants.MaxCapacity {
		return fmt.Errorf("invalid capacity %d: must be between %d and %d",
			c.Capacity, constants.MinCapacity, constants.MaxCapacity)
	}
	if _, err := model.ParseOverflowPolicy(c.Overflow); err != nil {
		return err
	}
	if _, err := model.ParseClockStyle(c.TimeFormat); err != nil {
		return err
	}
	if _, err := util.LoadTimezone(c.Timezone); err != nil {
		return err
	}
	if c.StorePath == "" {
		return fmt.Errorf("store_path must not be empty")
	}
	tick := c.TickInterval()
	if tick < constants.MinTickInterval || tick > constants.MaxTickInterval {
		return fmt.Errorf("invalid tick_interval_ms %d: must be between %d and %d",
			c.TickIntervalMs, constants.MinTickInterval.Milliseconds(), constants.MaxTickInterval.Milliseconds())
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging.level '%s': must be one of debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging.format '%s': must be either 'text' or 'json'", c.Logging.Format)
	}
	return nil
}
