package inventory

import (
	"context"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/GriffinCanCode/hostbridge/internal/providers/icon"
	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// EncodeFunc converts an icon resource into a base64 PNG string
type EncodeFunc func(resource interface{}) (string, error)

// Provider implements application inventory queries
type Provider struct {
	source host.InventorySource
	encode EncodeFunc
	logger *zap.Logger
}

// NewProvider creates an inventory provider backed by source
func NewProvider(source host.InventorySource, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		source: source,
		encode: icon.Encode,
		logger: logger,
	}
}

// WithEncoder replaces the icon encoder
func (p *Provider) WithEncoder(encode EncodeFunc) *Provider {
	p.encode = encode
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "inventory",
		Name:        "Application Inventory",
		Description: "Launchable applications known to the host",
		Category:    types.CategoryInventory,
		Capabilities: []string{
			"list",
			"names",
			"find_by_name",
			"icons",
		},
		Tools: []types.Tool{
			{
				ID:          "getInstalledApps",
				Name:        "Installed Apps",
				Description: "List launchable applications with name and package",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "getInstalledAppNames",
				Name:        "Installed App Names",
				Description: "List display names of launchable applications",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "getSingleAppInfoByName",
				Name:        "App Info By Name",
				Description: "Find one application by display name, ignoring case, with its icon",
				Parameters: []types.Parameter{
					{Name: "appName", Type: types.ParamString, Description: "Display name to match", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// List returns every application that has a launch entry point, in host order
func (p *Provider) List(ctx context.Context) ([]types.ApplicationRecord, error) {
	apps, err := p.source.Applications(ctx)
	if err != nil {
		return nil, types.WrapError(types.KindDeviceUnavailable, err, "application inventory unavailable")
	}

	records := make([]types.ApplicationRecord, 0, len(apps))
	for _, app := range apps {
		if _, ok := p.source.LaunchIntent(ctx, app.Package); !ok {
			continue
		}
		records = append(records, types.ApplicationRecord{Name: app.Label, Package: app.Package})
	}

	return records, nil
}

// Names returns the display names of List
func (p *Provider) Names(ctx context.Context) ([]string, error) {
	records, err := p.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
	}
	return names, nil
}

// FindByName returns the first launchable application whose label equals
// name under Unicode case folding, with its icon resolved. Ties between
// equal labels resolve to host enumeration order. A nil record means no match.
func (p *Provider) FindByName(ctx context.Context, name string) (*types.ApplicationRecord, error) {
	apps, err := p.source.Applications(ctx)
	if err != nil {
		return nil, types.WrapError(types.KindDeviceUnavailable, err, "application inventory unavailable")
	}

	fold := cases.Fold()
	want := fold.String(name)

	for _, app := range apps {
		if fold.String(app.Label) != want {
			continue
		}
		if _, ok := p.source.LaunchIntent(ctx, app.Package); !ok {
			continue
		}

		rec := types.ApplicationRecord{Name: app.Label, Package: app.Package}
		rec.Icon = p.resolveIcon(ctx, app.Package)
		return &rec, nil
	}

	return nil, nil
}

// resolveIcon never fails; a missing or broken icon leaves the record without one
func (p *Provider) resolveIcon(ctx context.Context, pkg string) *string {
	resource, err := p.source.Icon(ctx, pkg)
	if err != nil {
		p.logger.Debug("Icon unavailable", zap.String("package", pkg), zap.Error(err))
		return nil
	}

	encoded, err := p.encode(resource)
	if err != nil {
		p.logger.Warn("Icon encoding failed", zap.String("package", pkg), zap.Error(err))
		return nil
	}
	return &encoded
}
