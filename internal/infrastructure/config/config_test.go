package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "com.example.hanja_magic/apps", cfg.Channel.Name)
	assert.Equal(t, 1<<20, cfg.Channel.MaxMessageBytes)
	assert.Equal(t, BackendProfile, cfg.Host.Backend)
	assert.Contains(t, cfg.Launch.Dialers, "com.samsung.android.dialer")
	assert.Equal(t, 50, cfg.Device.BrightnessStep)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Metrics.Textfile)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"BRIDGE_CHANNEL":          "test/channel",
		"BRIDGE_HOST":             "sysfs",
		"BRIDGE_PROFILE":          "/etc/hostbridge/device.toml",
		"BRIDGE_DIALER_PACKAGES":  "com.example.phone",
		"BRIDGE_BROWSER_PACKAGES": "org.mozilla.firefox,com.brave.browser",
		"BRIGHTNESS_STEP":         "25",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"METRICS_TEXTFILE":        "/tmp/hostbridge.prom",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test/channel", cfg.Channel.Name)
	assert.Equal(t, BackendSysfs, cfg.Host.Backend)
	assert.Equal(t, "/etc/hostbridge/device.toml", cfg.Host.Profile)
	assert.Equal(t, []string{"com.example.phone"}, cfg.Launch.Dialers)
	assert.Equal(t, []string{"org.mozilla.firefox", "com.brave.browser"}, cfg.Launch.Browsers)
	assert.Equal(t, 25, cfg.Device.BrightnessStep)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "/tmp/hostbridge.prom", cfg.Metrics.Textfile)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "BRIDGE_HOST", "android"},
		{"zero step", "BRIGHTNESS_STEP", "0"},
		{"huge step", "BRIGHTNESS_STEP", "300"},
		{"non numeric step", "BRIGHTNESS_STEP", "bright"},
		{"blank channel", "BRIDGE_CHANNEL", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}
