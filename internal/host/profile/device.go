package profile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"go.uber.org/zap"
)

const defaultBrightness = 128

// Device is a simulated host backed by a profile.
// All state is held in memory and guarded by one mutex.
type Device struct {
	mu     sync.Mutex
	logger *zap.Logger

	root  string
	apps  []AppSpec
	icons map[string]string

	units        []string
	torchRejects bool
	torch        map[string]bool

	ringer host.RingerMode

	brightness      int
	brightnessFault bool

	launchFails bool
	grants      map[host.Permission]bool

	started  []host.Intent
	prompts  []host.Permission
	finished int
	onFinish []func()
}

// Open loads the profile at path and builds a device from it
func Open(path string, logger *zap.Logger) (*Device, error) {
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	return New(p, filepath.Dir(path), logger)
}

// New builds a device from a parsed profile. Relative icon paths resolve
// against root.
func New(p *Profile, root string, logger *zap.Logger) (*Device, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ringer := host.RingerNormal
	if p.Device.RingerMode != "" {
		mode, err := host.ParseRingerMode(p.Device.RingerMode)
		if err != nil {
			return nil, err
		}
		ringer = mode
	}

	brightness := defaultBrightness
	if p.Device.Brightness != nil {
		brightness = *p.Device.Brightness
		if brightness < 0 || brightness > 255 {
			return nil, fmt.Errorf("brightness out of range: %d", brightness)
		}
	}

	icons := map[string]string{}
	if root != "" {
		idx, err := indexIcons(root)
		if err != nil {
			return nil, err
		}
		icons = idx
	}

	d := &Device{
		logger:          logger,
		root:            root,
		apps:            append([]AppSpec(nil), p.Apps...),
		icons:           icons,
		units:           append([]string(nil), p.Device.TorchUnits...),
		torchRejects:    p.Device.TorchRejects,
		torch:           make(map[string]bool),
		ringer:          ringer,
		brightness:      brightness,
		brightnessFault: p.Device.BrightnessFault,
		launchFails:     p.Device.LaunchFails,
		grants: map[host.Permission]bool{
			host.PermissionNotificationPolicy: p.Device.Permissions.NotificationPolicy,
			host.PermissionWriteSettings:      p.Device.Permissions.WriteSettings,
		},
	}

	logger.Info("Profile device loaded",
		zap.Int("apps", len(d.apps)),
		zap.Int("icons", len(d.icons)),
		zap.Strings("torch_units", d.units))

	return d, nil
}

// Capabilities exposes the device through every host interface
func (d *Device) Capabilities() host.Host {
	return host.Host{
		Inventory:   d,
		Launcher:    d,
		Torch:       d,
		Ringer:      d,
		Brightness:  d,
		Permissions: d,
		Activities:  d,
	}
}

// OnFinish registers fn to run after FinishAll
func (d *Device) OnFinish(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFinish = append(d.onFinish, fn)
}

// Grant sets or revokes a permission
func (d *Device) Grant(perm host.Permission, granted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.grants[perm] = granted
}

// Started returns the intents issued so far
func (d *Device) Started() []host.Intent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]host.Intent(nil), d.started...)
}

// GrantRequests returns the permission prompts shown so far
func (d *Device) GrantRequests() []host.Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]host.Permission(nil), d.prompts...)
}

// Finished reports how many times the activities were torn down
func (d *Device) Finished() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.finished
}

// TorchState reports whether unit is lit
func (d *Device) TorchState(unit string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.torch[unit]
}

func (d *Device) Applications(ctx context.Context) ([]host.Application, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	apps := make([]host.Application, 0, len(d.apps))
	for _, a := range d.apps {
		label := a.Label
		if label == "" {
			label = a.Package
		}
		apps = append(apps, host.Application{Package: a.Package, Label: label})
	}
	return apps, nil
}

func (d *Device) LaunchIntent(ctx context.Context, pkg string) (*host.Intent, bool) {
	app, ok := d.lookup(pkg)
	if !ok || !app.IsLaunchable() {
		return nil, false
	}
	return &host.Intent{Action: host.ActionMain, Package: pkg}, true
}

// Icon resolves the declared icon file, then the drawable, then icons/<package>.*
func (d *Device) Icon(ctx context.Context, pkg string) (interface{}, error) {
	app, ok := d.lookup(pkg)
	if !ok {
		return nil, fmt.Errorf("unknown package %s", pkg)
	}

	switch {
	case app.Icon != "":
		path := app.Icon
		if !filepath.IsAbs(path) {
			path = filepath.Join(d.root, path)
		}
		return loadIcon(path)
	case app.Drawable != nil:
		return ColorDrawable{Width: app.Drawable.Width, Height: app.Drawable.Height, Color: app.Drawable.Color}, nil
	}

	d.mu.Lock()
	path, ok := d.icons[pkg]
	d.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no icon for %s", pkg)
	}
	return loadIcon(path)
}

func (d *Device) Start(ctx context.Context, intent host.Intent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.launchFails {
		return fmt.Errorf("no activity found to handle %s", intent.Action)
	}
	d.started = append(d.started, intent)
	d.logger.Info("Intent started",
		zap.String("action", string(intent.Action)),
		zap.String("package", intent.Package),
		zap.String("data", intent.Data))
	return nil
}

func (d *Device) TorchUnits(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.units...), nil
}

func (d *Device) SetTorchMode(ctx context.Context, unit string, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.torchRejects {
		return fmt.Errorf("torch unit %s rejected mode change", unit)
	}
	for _, u := range d.units {
		if u == unit {
			d.torch[unit] = on
			return nil
		}
	}
	return fmt.Errorf("unknown torch unit %s: %w", unit, host.ErrUnavailable)
}

func (d *Device) RingerMode(ctx context.Context) (host.RingerMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ringer, nil
}

func (d *Device) SetRingerMode(ctx context.Context, mode host.RingerMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if mode == host.RingerSilent && !d.grants[host.PermissionNotificationPolicy] {
		return fmt.Errorf("silent mode needs %s", host.PermissionNotificationPolicy)
	}
	d.ringer = mode
	return nil
}

func (d *Device) Brightness(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.brightnessFault {
		return 0, fmt.Errorf("brightness setting not found: %w", host.ErrUnavailable)
	}
	return d.brightness, nil
}

func (d *Device) SetBrightness(ctx context.Context, level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.brightnessFault {
		return fmt.Errorf("brightness setting not writable: %w", host.ErrUnavailable)
	}
	if level < 0 || level > 255 {
		return fmt.Errorf("brightness out of range: %d", level)
	}
	d.brightness = level
	return nil
}

func (d *Device) HasPermission(ctx context.Context, perm host.Permission) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.grants[perm]
}

func (d *Device) RequestGrant(ctx context.Context, perm host.Permission) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prompts = append(d.prompts, perm)
	d.logger.Info("Permission grant requested", zap.String("permission", string(perm)))
}

func (d *Device) FinishAll(ctx context.Context) {
	d.mu.Lock()
	d.finished++
	hooks := append([]func(){}, d.onFinish...)
	d.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func (d *Device) lookup(pkg string) (AppSpec, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.apps {
		if a.Package == pkg {
			return a, true
		}
	}
	return AppSpec{}, false
}
