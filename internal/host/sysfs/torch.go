package sysfs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

const (
	// DefaultLEDRoot is the LED class directory
	DefaultLEDRoot = "/sys/class/leds"

	torchPattern = "*{flash,torch}*"
)

// Torch controls flash LEDs as torch units
type Torch struct {
	root   string
	logger *zap.Logger
}

// NewTorch creates a torch controller over the LED class at root
func NewTorch(root string, logger *zap.Logger) *Torch {
	if root == "" {
		root = DefaultLEDRoot
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Torch{root: root, logger: logger}
}

// TorchUnits lists flash or torch LEDs by name
func (t *Torch) TorchUnits(ctx context.Context) ([]string, error) {
	return devices(t.root, torchPattern)
}

// SetTorchMode drives unit to its maximum brightness, or to zero
func (t *Torch) SetTorchMode(ctx context.Context, unit string, on bool) error {
	if ok, _ := doublestar.Match(torchPattern, unit); !ok || strings.ContainsRune(unit, '/') {
		return fmt.Errorf("not a torch unit: %q: %w", unit, host.ErrUnavailable)
	}

	dir := filepath.Join(t.root, unit)
	level := 0
	if on {
		limit, err := readInt(filepath.Join(dir, attrMaxBrightness))
		if err != nil {
			return fmt.Errorf("torch %s: %w", unit, err)
		}
		level = limit
	}

	if err := writeInt(filepath.Join(dir, attrBrightness), level); err != nil {
		return fmt.Errorf("torch %s: %w", unit, err)
	}

	t.logger.Debug("Torch mode set", zap.String("unit", unit), zap.Bool("on", on), zap.Int("level", level))
	return nil
}
