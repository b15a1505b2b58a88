// Package device implements permission-checked device state controls:
// torch, ringer mode, screen brightness and app teardown.
package device

import (
	"context"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
	"go.uber.org/zap"
)

// Brightness bounds on the host settings scale
const (
	MinBrightness = 0
	MaxBrightness = 255
)

// Provider implements device control operations
type Provider struct {
	torch       host.TorchController
	ringer      host.RingerController
	brightness  host.BrightnessStore
	permissions host.PermissionOracle
	activities  host.ActivityFinisher
	logger      *zap.Logger
}

// NewProvider creates a device control provider from the host capabilities
func NewProvider(h host.Host, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		torch:       h.Torch,
		ringer:      h.Ringer,
		brightness:  h.Brightness,
		permissions: h.Permissions,
		activities:  h.Activities,
		logger:      logger,
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "device",
		Name:        "Device Controls",
		Description: "Torch, ringer mode, brightness and app teardown",
		Category:    types.CategoryDevice,
		Capabilities: []string{
			"torch",
			"ringer",
			"brightness",
			"teardown",
		},
		Tools: []types.Tool{
			{ID: "turnOnFlashlight", Name: "Torch On", Description: "Turn on the primary torch unit", Parameters: []types.Parameter{}, Returns: "string"},
			{ID: "turnOffFlashlight", Name: "Torch Off", Description: "Turn off the primary torch unit", Parameters: []types.Parameter{}, Returns: "string"},
			{ID: "setVibrationMode", Name: "Vibrate", Description: "Set ringer to vibrate", Parameters: []types.Parameter{}, Returns: "string"},
			{ID: "setSoundMode", Name: "Sound", Description: "Set ringer to normal", Parameters: []types.Parameter{}, Returns: "string"},
			{ID: "setSilentMode", Name: "Silent", Description: "Set ringer to silent; needs notification policy access", Parameters: []types.Parameter{}, Returns: "string"},
			{ID: "enableDarkMode", Name: "Dim Screen", Description: "Lower brightness by one step; needs write settings access", Parameters: []types.Parameter{}, Returns: "string"},
			{ID: "enableLightMode", Name: "Brighten Screen", Description: "Raise brightness by one step; needs write settings access", Parameters: []types.Parameter{}, Returns: "string"},
			{
				ID:          "adjustBrightness",
				Name:        "Adjust Brightness",
				Description: "Add delta to brightness, clamped to 0..255",
				Parameters: []types.Parameter{
					{Name: "delta", Type: types.ParamInteger, Description: "Signed brightness change", Required: true},
				},
				Returns: "string",
			},
			{ID: "getOutApp", Name: "Close App", Description: "Finish all of the caller's activities", Parameters: []types.Parameter{}, Returns: "string"},
		},
	}
}

// TorchOn turns on the first torch unit
func (p *Provider) TorchOn(ctx context.Context) error {
	return p.setTorch(ctx, true)
}

// TorchOff turns off the first torch unit
func (p *Provider) TorchOff(ctx context.Context) error {
	return p.setTorch(ctx, false)
}

func (p *Provider) setTorch(ctx context.Context, on bool) error {
	units, err := p.torch.TorchUnits(ctx)
	if err != nil {
		return types.WrapError(types.KindDeviceUnavailable, err, "torch units unavailable")
	}
	if len(units) == 0 {
		return types.NewError(types.KindDeviceUnavailable, "no torch unit on this device")
	}

	if err := p.torch.SetTorchMode(ctx, units[0], on); err != nil {
		return types.WrapError(types.KindDeviceUnavailable, err, "torch %s rejected mode change", units[0])
	}
	return nil
}

// SetRingerMode changes the ringer; silent needs notification policy access
func (p *Provider) SetRingerMode(ctx context.Context, mode host.RingerMode) error {
	if mode == host.RingerSilent && !p.require(ctx, host.PermissionNotificationPolicy) {
		return types.NewError(types.KindPermissionRequired, "notification policy access is not granted")
	}

	if err := p.ringer.SetRingerMode(ctx, mode); err != nil {
		return types.WrapError(types.KindDeviceUnavailable, err, "ringer mode %s rejected", mode)
	}
	return nil
}

// AdjustBrightness adds delta to the current brightness, clamps the result
// to [MinBrightness, MaxBrightness], writes it and returns it
func (p *Provider) AdjustBrightness(ctx context.Context, delta int) (int, error) {
	if !p.require(ctx, host.PermissionWriteSettings) {
		return 0, types.NewError(types.KindPermissionRequired, "write settings access is not granted")
	}

	current, err := p.brightness.Brightness(ctx)
	if err != nil {
		return 0, types.WrapError(types.KindDeviceUnavailable, err, "brightness could not be read")
	}

	level := clamp(current+delta, MinBrightness, MaxBrightness)
	if err := p.brightness.SetBrightness(ctx, level); err != nil {
		return 0, types.WrapError(types.KindDeviceUnavailable, err, "brightness could not be written")
	}

	p.logger.Debug("Brightness adjusted", zap.Int("from", current), zap.Int("to", level))
	return level, nil
}

// Terminate finishes every activity of the caller
func (p *Provider) Terminate(ctx context.Context) {
	p.activities.FinishAll(ctx)
}

// require checks perm and starts the grant flow when it is missing
func (p *Provider) require(ctx context.Context, perm host.Permission) bool {
	if p.permissions.HasPermission(ctx, perm) {
		return true
	}
	p.permissions.RequestGrant(ctx, perm)
	p.logger.Info("Permission grant requested", zap.String("permission", string(perm)))
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
