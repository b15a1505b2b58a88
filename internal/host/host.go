package host

import (
	"context"
	"errors"
	"fmt"
	"image/draw"
	"strings"
)

// ErrUnavailable reports a capability the host cannot provide
var ErrUnavailable = errors.New("host capability unavailable")

// Permission names a host-granted capability
type Permission string

const (
	PermissionNotificationPolicy Permission = "notification_policy"
	PermissionWriteSettings      Permission = "write_settings"
)

// RingerMode represents the audio ringer state
type RingerMode string

const (
	RingerNormal  RingerMode = "normal"
	RingerVibrate RingerMode = "vibrate"
	RingerSilent  RingerMode = "silent"
)

// ParseRingerMode converts a mode name, ignoring case
func ParseRingerMode(s string) (RingerMode, error) {
	switch mode := RingerMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case RingerNormal, RingerVibrate, RingerSilent:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown ringer mode: %q", s)
	}
}

// Action is the verb of an intent
type Action string

const (
	ActionMain Action = "android.intent.action.MAIN"
	ActionDial Action = "android.intent.action.DIAL"
	ActionView Action = "android.intent.action.VIEW"
)

// Intent describes a launch request handed to the host
type Intent struct {
	Action  Action `json:"action"`
	Package string `json:"package,omitempty"`
	Data    string `json:"data,omitempty"`
}

// Application is an entry of the host's application inventory
type Application struct {
	Package string
	Label   string
}

// Drawable is an icon resource that is not already a bitmap
type Drawable interface {
	IntrinsicWidth() int
	IntrinsicHeight() int
	// Draw renders the resource over the full bounds of dst
	Draw(dst draw.Image) error
}

// InventorySource enumerates installed applications
type InventorySource interface {
	Applications(ctx context.Context) ([]Application, error)
	// LaunchIntent resolves the default entry point, if the app has one
	LaunchIntent(ctx context.Context, pkg string) (*Intent, bool)
	// Icon returns an image.Image or a Drawable
	Icon(ctx context.Context, pkg string) (interface{}, error)
}

// Launcher issues intents
type Launcher interface {
	Start(ctx context.Context, intent Intent) error
}

// TorchController drives camera-associated torch units
type TorchController interface {
	TorchUnits(ctx context.Context) ([]string, error)
	SetTorchMode(ctx context.Context, unit string, on bool) error
}

// RingerController reads and changes the ringer mode
type RingerController interface {
	RingerMode(ctx context.Context) (RingerMode, error)
	SetRingerMode(ctx context.Context, mode RingerMode) error
}

// BrightnessStore reads and writes screen brightness on the 0..255 scale
type BrightnessStore interface {
	Brightness(ctx context.Context) (int, error)
	SetBrightness(ctx context.Context, level int) error
}

// PermissionOracle answers permission checks and starts grant flows
type PermissionOracle interface {
	HasPermission(ctx context.Context, perm Permission) bool
	// RequestGrant is fire-and-forget; the outcome is seen on a later check
	RequestGrant(ctx context.Context, perm Permission)
}

// ActivityFinisher tears down the caller's own activities
type ActivityFinisher interface {
	FinishAll(ctx context.Context)
}

// Host bundles every capability the bridge uses
type Host struct {
	Inventory   InventorySource
	Launcher    Launcher
	Torch       TorchController
	Ringer      RingerController
	Brightness  BrightnessStore
	Permissions PermissionOracle
	Activities  ActivityFinisher
}

// Validate checks that every capability is wired
func (h Host) Validate() error {
	missing := []string{}
	if h.Inventory == nil {
		missing = append(missing, "inventory")
	}
	if h.Launcher == nil {
		missing = append(missing, "launcher")
	}
	if h.Torch == nil {
		missing = append(missing, "torch")
	}
	if h.Ringer == nil {
		missing = append(missing, "ringer")
	}
	if h.Brightness == nil {
		missing = append(missing, "brightness")
	}
	if h.Permissions == nil {
		missing = append(missing, "permissions")
	}
	if h.Activities == nil {
		missing = append(missing, "activities")
	}
	if len(missing) > 0 {
		return fmt.Errorf("host capabilities not wired: %s", strings.Join(missing, ", "))
	}
	return nil
}
