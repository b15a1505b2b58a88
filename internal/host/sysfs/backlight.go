package sysfs

import (
	"context"
	"fmt"
	"math"
	"path/filepath"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"go.uber.org/zap"
)

// DefaultBacklightRoot is the backlight class directory
const DefaultBacklightRoot = "/sys/class/backlight"

// scaleMax is the top of the bridge's brightness scale
const scaleMax = 255

// Backlight exposes the first backlight device on the 0..255 scale
type Backlight struct {
	root   string
	logger *zap.Logger
}

// NewBacklight creates a brightness store over the backlight class at root
func NewBacklight(root string, logger *zap.Logger) *Backlight {
	if root == "" {
		root = DefaultBacklightRoot
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backlight{root: root, logger: logger}
}

// device resolves the first backlight and its hardware maximum
func (b *Backlight) device() (string, int, error) {
	names, err := devices(b.root, "*")
	if err != nil {
		return "", 0, err
	}
	if len(names) == 0 {
		return "", 0, fmt.Errorf("no backlight under %s: %w", b.root, host.ErrUnavailable)
	}

	dir := filepath.Join(b.root, names[0])
	limit, err := readInt(filepath.Join(dir, attrMaxBrightness))
	if err != nil {
		return "", 0, fmt.Errorf("backlight %s: %w", names[0], err)
	}
	if limit <= 0 {
		return "", 0, fmt.Errorf("backlight %s reports max_brightness %d: %w", names[0], limit, host.ErrUnavailable)
	}
	return dir, limit, nil
}

func (b *Backlight) Brightness(ctx context.Context) (int, error) {
	dir, limit, err := b.device()
	if err != nil {
		return 0, err
	}
	raw, err := readInt(filepath.Join(dir, attrBrightness))
	if err != nil {
		return 0, fmt.Errorf("read backlight: %w", err)
	}
	return rescale(raw, limit, scaleMax), nil
}

func (b *Backlight) SetBrightness(ctx context.Context, level int) error {
	if level < 0 || level > scaleMax {
		return fmt.Errorf("brightness out of range: %d", level)
	}
	dir, limit, err := b.device()
	if err != nil {
		return err
	}
	raw := rescale(level, scaleMax, limit)
	if err := writeInt(filepath.Join(dir, attrBrightness), raw); err != nil {
		return fmt.Errorf("write backlight: %w", err)
	}
	b.logger.Debug("Backlight set", zap.Int("level", level), zap.Int("raw", raw), zap.Int("max", limit))
	return nil
}

// Writable reports whether the backlight accepts writes from this process
func (b *Backlight) Writable() bool {
	dir, _, err := b.device()
	if err != nil {
		return false
	}
	return writable(filepath.Join(dir, attrBrightness))
}

func rescale(v, from, to int) int {
	if from <= 0 {
		return 0
	}
	r := int(math.Round(float64(v) * float64(to) / float64(from)))
	if r < 0 {
		return 0
	}
	if r > to {
		return to
	}
	return r
}

// Permissions grants write-settings when the backlight is writable and
// defers every other permission to Fallback.
type Permissions struct {
	Backlight *Backlight
	Fallback  host.PermissionOracle
}

func (p Permissions) HasPermission(ctx context.Context, perm host.Permission) bool {
	if perm == host.PermissionWriteSettings {
		return p.Backlight.Writable()
	}
	return p.Fallback != nil && p.Fallback.HasPermission(ctx, perm)
}

func (p Permissions) RequestGrant(ctx context.Context, perm host.Permission) {
	if perm == host.PermissionWriteSettings {
		p.Backlight.logger.Warn("Backlight is not writable; adjust udev rules or group membership",
			zap.String("root", p.Backlight.root))
		return
	}
	if p.Fallback != nil {
		p.Fallback.RequestGrant(ctx, perm)
	}
}
