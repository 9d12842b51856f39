// Package config provides configuration loading and validation for the
// harmony pipeline. Values come from environment variables (a .env file is
// loaded by main); capabilities derived here are computed once at startup
// and passed explicitly into the components that need them.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Defaults for optional settings.
const (
	DefaultTimezone    = "America/New_York"
	DefaultVisionModel = "gemini-2.5-flash"
)

// Config holds the runtime configuration.
type Config struct {
	// APIKey authenticates both the extraction client and the vision OCR
	// engine. Required.
	APIKey string
	// Timezone is the IANA zone users are assumed to be in when resolving
	// relative dates ("next Tuesday").
	Timezone string
	// VisionModel is the model backing the vision OCR engine.
	VisionModel string
	// VisionOCREnabled gates the optional vision engine. Deployments
	// without vision quota set HARMONY_VISION_OCR=off; fusion mode then
	// fails fast instead of burning extraction quota.
	VisionOCREnabled bool
}

// Load reads configuration from the environment, applying defaults for
// optional values.
func Load() *Config {
	cfg := &Config{
		APIKey:           os.Getenv("GEMINI_API_KEY"),
		Timezone:         os.Getenv("HARMONY_TIMEZONE"),
		VisionModel:      os.Getenv("HARMONY_VISION_MODEL"),
		VisionOCREnabled: true,
	}

	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = DefaultVisionModel
	}
	if v := strings.ToLower(os.Getenv("HARMONY_VISION_OCR")); v == "off" || v == "false" || v == "0" {
		cfg.VisionOCREnabled = false
	}

	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config error: invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone as a *time.Location.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
