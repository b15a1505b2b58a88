package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Host backends
const (
	BackendProfile = "profile"
	BackendSysfs   = "sysfs"
)

// Config holds all bridge configuration.
type Config struct {
	Channel ChannelConfig
	Host    HostConfig
	Launch  LaunchConfig
	Device  DeviceConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// ChannelConfig holds request channel configuration.
type ChannelConfig struct {
	Name            string `envconfig:"BRIDGE_CHANNEL" default:"com.example.hanja_magic/apps"`
	MaxMessageBytes int    `envconfig:"BRIDGE_MAX_MESSAGE_BYTES" default:"1048576"`
}

// HostConfig selects the host backend.
// The sysfs backend takes torch and brightness from the kernel and
// everything else from the profile.
type HostConfig struct {
	Backend       string `envconfig:"BRIDGE_HOST" default:"profile"`
	Profile       string `envconfig:"BRIDGE_PROFILE" default:"profile.yaml"`
	LEDRoot       string `envconfig:"BRIDGE_SYSFS_LEDS" default:"/sys/class/leds"`
	BacklightRoot string `envconfig:"BRIDGE_SYSFS_BACKLIGHT" default:"/sys/class/backlight"`
}

// LaunchConfig holds the special-cased launch identifiers.
type LaunchConfig struct {
	Dialers  []string `envconfig:"BRIDGE_DIALER_PACKAGES" default:"com.samsung.android.dialer,com.android.dialer,com.google.android.dialer"`
	Browsers []string `envconfig:"BRIDGE_BROWSER_PACKAGES" default:"com.android.chrome,com.sec.android.app.sbrowser"`
}

// DeviceConfig holds device control tuning.
type DeviceConfig struct {
	BrightnessStep int `envconfig:"BRIGHTNESS_STEP" default:"50"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds metrics output configuration.
type MetricsConfig struct {
	Textfile string `envconfig:"METRICS_TEXTFILE"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Channel: ChannelConfig{
			Name:            "com.example.hanja_magic/apps",
			MaxMessageBytes: 1 << 20,
		},
		Host: HostConfig{
			Backend:       BackendProfile,
			Profile:       "profile.yaml",
			LEDRoot:       "/sys/class/leds",
			BacklightRoot: "/sys/class/backlight",
		},
		Launch: LaunchConfig{
			Dialers:  []string{"com.samsung.android.dialer", "com.android.dialer", "com.google.android.dialer"},
			Browsers: []string{"com.android.chrome", "com.sec.android.app.sbrowser"},
		},
		Device: DeviceConfig{
			BrightnessStep: 50,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Channel.Name) == "" {
		return fmt.Errorf("channel name cannot be empty")
	}
	if c.Channel.MaxMessageBytes <= 0 {
		return fmt.Errorf("max message size must be positive, got %d", c.Channel.MaxMessageBytes)
	}
	switch c.Host.Backend {
	case BackendProfile, BackendSysfs:
	default:
		return fmt.Errorf("unknown host backend: %q", c.Host.Backend)
	}
	if c.Device.BrightnessStep <= 0 || c.Device.BrightnessStep > 255 {
		return fmt.Errorf("brightness step must be within 1..255, got %d", c.Device.BrightnessStep)
	}
	return nil
}
