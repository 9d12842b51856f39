package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("HARMONY_TIMEZONE", "")
	t.Setenv("HARMONY_VISION_MODEL", "")
	t.Setenv("HARMONY_VISION_OCR", "")

	cfg := Load()
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultVisionModel, cfg.VisionModel)
	assert.True(t, cfg.VisionOCREnabled)
}

func TestLoadVisionDisabled(t *testing.T) {
	tests := []string{"off", "false", "0", "OFF"}
	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			t.Setenv("HARMONY_VISION_OCR", value)
			assert.False(t, Load().VisionOCREnabled)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{APIKey: "key", Timezone: "Europe/Berlin"}
	assert.NoError(t, cfg.Validate())
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg := &Config{Timezone: DefaultTimezone}
	assert.Error(t, cfg.Validate())
}

func TestValidateBadTimezone(t *testing.T) {
	cfg := &Config{APIKey: "key", Timezone: "Mars/Olympus_Mons"}
	assert.Error(t, cfg.Validate())
}

func TestLocation(t *testing.T) {
	cfg := &Config{APIKey: "key", Timezone: "UTC"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
