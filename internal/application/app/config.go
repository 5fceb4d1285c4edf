package app

import (
	"fmt"
	"time"

	"github.com/penwyp/go-stampwatch/internal/appconfig"
	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/util"
)

// AppConfig contains the resolved runtime configuration
type AppConfig struct {
	// Log settings
	Capacity int
	Overflow model.OverflowPolicy

	// Display settings
	Timezone   string
	TimeFormat model.ClockStyle
	Color      bool
	Bell       bool

	// Storage settings
	StorePath    string
	SaveOnChange bool

	// Interaction settings
	ConfirmReset bool
	TickInterval time.Duration
}

// FromFile converts a validated file configuration
func FromFile(cfg appconfig.Config) (*AppConfig, error) {
	overflow, err := model.ParseOverflowPolicy(cfg.Overflow)
	if err != nil {
		return nil, err
	}
	clock, err := model.ParseClockStyle(cfg.TimeFormat)
	if err != nil {
		return nil, err
	}

	c := &AppConfig{
		Capacity:     cfg.Capacity,
		Overflow:     overflow,
		Timezone:     cfg.Timezone,
		TimeFormat:   clock,
		Color:        cfg.Color,
		Bell:         cfg.Bell,
		StorePath:    cfg.StorePath,
		SaveOnChange: cfg.SaveOnChange,
		ConfirmReset: cfg.ConfirmReset,
		TickInterval: cfg.TickInterval(),
	}
	return c, c.Validate()
}

// Validate fills defaults and checks ranges
func (c *AppConfig) Validate() error {
	if c.Capacity == 0 {
		c.Capacity = constants.DefaultCapacity
	}
	if c.Capacity < constants.MinCapacity || c.Capacity > constants.MaxCapacity {
		return fmt.Errorf("invalid capacity %d: must be between %d and %d",
			c.Capacity, constants.MinCapacity, constants.MaxCapacity)
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if _, err := util.LoadTimezone(c.Timezone); err != nil {
		return err
	}
	if c.StorePath == "" {
		c.StorePath = util.ExpandPath(constants.DefaultStorePath)
	}
	if c.TickInterval == 0 {
		c.TickInterval = constants.DefaultTickInterval
	}
	if c.TickInterval < constants.MinTickInterval {
		c.TickInterval = constants.MinTickInterval
	}
	if c.TickInterval > constants.MaxTickInterval {
		c.TickInterval = constants.MaxTickInterval
	}
	return nil
}
