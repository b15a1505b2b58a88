// Package hosttest provides in-memory host capabilities for tests.
package hosttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/stretchr/testify/mock"
)

// App is a fake inventory entry
type App struct {
	Package    string
	Label      string
	Launchable bool
	Icon       interface{}
	IconErr    error
}

// Device is a fake host implementing every capability
type Device struct {
	mu sync.Mutex

	Apps         []App
	AppsErr      error
	Units        []string
	UnitsErr     error
	TorchErr     error
	Torch        map[string]bool
	Ringer       host.RingerMode
	RingerErr    error
	Level        int
	ReadErr      error
	WriteErr     error
	Grants       map[host.Permission]bool
	Prompts      []host.Permission
	Started      []host.Intent
	StartErr     error
	Finished     int
	RingerWrites int
	BrightWrites int
	IconLookups  int
}

// NewDevice creates a device with one torch unit and mid brightness
func NewDevice() *Device {
	return &Device{
		Units:  []string{"0"},
		Torch:  make(map[string]bool),
		Ringer: host.RingerNormal,
		Level:  128,
		Grants: make(map[host.Permission]bool),
	}
}

// Host exposes the device through every capability interface
func (d *Device) Host() host.Host {
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

func (d *Device) Applications(ctx context.Context) ([]host.Application, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.AppsErr != nil {
		return nil, d.AppsErr
	}
	apps := make([]host.Application, 0, len(d.Apps))
	for _, a := range d.Apps {
		apps = append(apps, host.Application{Package: a.Package, Label: a.Label})
	}
	return apps, nil
}

func (d *Device) LaunchIntent(ctx context.Context, pkg string) (*host.Intent, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.Apps {
		if a.Package == pkg && a.Launchable {
			return &host.Intent{Action: host.ActionMain, Package: pkg}, true
		}
	}
	return nil, false
}

func (d *Device) Icon(ctx context.Context, pkg string) (interface{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.IconLookups++
	for _, a := range d.Apps {
		if a.Package == pkg {
			if a.IconErr != nil {
				return nil, a.IconErr
			}
			if a.Icon == nil {
				return nil, fmt.Errorf("no icon for %s", pkg)
			}
			return a.Icon, nil
		}
	}
	return nil, fmt.Errorf("unknown package %s", pkg)
}

func (d *Device) Start(ctx context.Context, intent host.Intent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Started = append(d.Started, intent)
	return d.StartErr
}

func (d *Device) TorchUnits(ctx context.Context) ([]string, error) {
	return d.Units, d.UnitsErr
}

func (d *Device) SetTorchMode(ctx context.Context, unit string, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.TorchErr != nil {
		return d.TorchErr
	}
	d.Torch[unit] = on
	return nil
}

func (d *Device) RingerMode(ctx context.Context) (host.RingerMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Ringer, nil
}

func (d *Device) SetRingerMode(ctx context.Context, mode host.RingerMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.RingerErr != nil {
		return d.RingerErr
	}
	d.Ringer = mode
	d.RingerWrites++
	return nil
}

func (d *Device) Brightness(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Level, d.ReadErr
}

func (d *Device) SetBrightness(ctx context.Context, level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.WriteErr != nil {
		return d.WriteErr
	}
	d.Level = level
	d.BrightWrites++
	return nil
}

func (d *Device) HasPermission(ctx context.Context, perm host.Permission) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Grants[perm]
}

func (d *Device) RequestGrant(ctx context.Context, perm host.Permission) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Prompts = append(d.Prompts, perm)
}

func (d *Device) FinishAll(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Finished++
}

// MockLauncher is a mock implementation of host.Launcher
type MockLauncher struct {
	mock.Mock
}

// Start mocks the Start method
func (m *MockLauncher) Start(ctx context.Context, intent host.Intent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}
