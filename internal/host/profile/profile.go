package profile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/hostbridge/internal/shared/utils"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Supported profile formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// manifestPattern matches per-app manifests relative to the profile directory
const manifestPattern = "apps/**/*.{yaml,yml,toml}"

// Profile describes a simulated device
type Profile struct {
	Device DeviceSpec `yaml:"device" toml:"device"`
	Apps   []AppSpec  `yaml:"apps" toml:"apps"`
}

// DeviceSpec holds the initial device state
type DeviceSpec struct {
	TorchUnits      []string       `yaml:"torch_units" toml:"torch_units"`
	TorchRejects    bool           `yaml:"torch_rejects" toml:"torch_rejects"`
	RingerMode      string         `yaml:"ringer_mode" toml:"ringer_mode"`
	Brightness      *int           `yaml:"brightness" toml:"brightness"`
	BrightnessFault bool           `yaml:"brightness_fault" toml:"brightness_fault"`
	LaunchFails     bool           `yaml:"launch_fails" toml:"launch_fails"`
	Permissions     PermissionSpec `yaml:"permissions" toml:"permissions"`
}

// PermissionSpec holds the initial permission grants
type PermissionSpec struct {
	NotificationPolicy bool `yaml:"notification_policy" toml:"notification_policy"`
	WriteSettings      bool `yaml:"write_settings" toml:"write_settings"`
}

// AppSpec describes one installed application
type AppSpec struct {
	Package    string        `yaml:"package" toml:"package"`
	Label      string        `yaml:"label" toml:"label"`
	Launchable *bool         `yaml:"launchable" toml:"launchable"` // Defaults to true
	Icon       string        `yaml:"icon" toml:"icon"`             // Path relative to the profile
	Drawable   *DrawableSpec `yaml:"drawable" toml:"drawable"`
}

// DrawableSpec describes a solid color icon
type DrawableSpec struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Color  string `yaml:"color" toml:"color"`
}

// IsLaunchable reports whether the app has a launch entry point
func (a AppSpec) IsLaunchable() bool {
	return a.Launchable == nil || *a.Launchable
}

// FormatOf infers the format from a file extension
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported profile format: %s", path)
	}
}

// Parse decodes a profile in the given format
func Parse(data []byte, format string) (*Profile, error) {
	var p Profile
	if err := decode(data, format, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads a profile and the app manifests next to it
func Load(path string) (*Profile, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	manifests, err := loadManifests(os.DirFS(filepath.Dir(path)))
	if err != nil {
		return nil, err
	}
	p.Apps = append(p.Apps, manifests...)

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}

// Validate checks app fields and that package identifiers are unique
func (p *Profile) Validate() error {
	seen := make(map[string]bool, len(p.Apps))
	for i, app := range p.Apps {
		if err := utils.ValidatePackage(app.Package, fmt.Sprintf("apps[%d].package", i)); err != nil {
			return err
		}
		if err := utils.ValidateLabel(app.Label, fmt.Sprintf("apps[%d].label", i)); err != nil {
			return err
		}
		if app.Drawable != nil {
			if err := utils.ValidateColor(app.Drawable.Color, fmt.Sprintf("apps[%d].drawable.color", i)); err != nil {
				return err
			}
		}
		if seen[app.Package] {
			return fmt.Errorf("duplicate package: %s", app.Package)
		}
		seen[app.Package] = true
	}
	return nil
}

func loadManifests(fsys fs.FS) ([]AppSpec, error) {
	matches, err := doublestar.Glob(fsys, manifestPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob app manifests: %w", err)
	}

	apps := make([]AppSpec, 0, len(matches))
	for _, match := range matches {
		format, err := FormatOf(match)
		if err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(fsys, match)
		if err != nil {
			return nil, fmt.Errorf("read manifest %s: %w", match, err)
		}

		var app AppSpec
		if err := decode(data, format, &app); err != nil {
			return nil, fmt.Errorf("parse manifest %s: %w", match, err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func decode(data []byte, format string, v interface{}) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		return toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported profile format: %s", format)
	}
}
