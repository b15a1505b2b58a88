// Package launcher resolves and issues application launch intents.
//
// A small ordered route table maps special identifiers (dialers, browsers)
// to strategies that synthesize system intents from the request payload.
// Every other identifier falls back to the host's default entry point.
package launcher

import (
	"context"
	"strings"
	"unicode"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
	"go.uber.org/zap"
)

// Request is a single launch request
type Request struct {
	Identifier string
	Payload    *string
}

func (r Request) payload() string {
	if r.Payload == nil {
		return ""
	}
	return *r.Payload
}

// Strategy builds the intent for a special identifier.
// ok is false when the payload cannot be used.
type Strategy func(payload string) (intent host.Intent, ok bool)

// Route binds an identifier to its strategy
type Route struct {
	Identifier string
	Strategy   Strategy
}

// Dial strips all whitespace from payload and dials the remaining number
func Dial(payload string) (host.Intent, bool) {
	number := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)
	if number == "" {
		return host.Intent{}, false
	}
	return host.Intent{Action: host.ActionDial, Data: "tel:" + number}, true
}

// Browse opens payload as a literal URL
func Browse(payload string) (host.Intent, bool) {
	if payload == "" {
		return host.Intent{}, false
	}
	return host.Intent{Action: host.ActionView, Data: payload}, true
}

// DefaultRoutes builds the route table, dialers first
func DefaultRoutes(dialers, browsers []string) []Route {
	routes := make([]Route, 0, len(dialers)+len(browsers))
	for _, id := range dialers {
		routes = append(routes, Route{Identifier: id, Strategy: Dial})
	}
	for _, id := range browsers {
		routes = append(routes, Route{Identifier: id, Strategy: Browse})
	}
	return routes
}

// Dispatcher performs launches
type Dispatcher struct {
	routes   []Route
	source   host.InventorySource
	launcher host.Launcher
	logger   *zap.Logger
}

// NewDispatcher creates a launch dispatcher
func NewDispatcher(source host.InventorySource, launcher host.Launcher, routes []Route, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		routes:   routes,
		source:   source,
		launcher: launcher,
		logger:   logger,
	}
}

// Definition returns service metadata
func (d *Dispatcher) Definition() types.Service {
	return types.Service{
		ID:          "launcher",
		Name:        "Launch Dispatcher",
		Description: "Launch applications, dial numbers and open URLs",
		Category:    types.CategoryLaunch,
		Capabilities: []string{
			"launch",
			"dial",
			"browse",
		},
		Tools: []types.Tool{
			{
				ID:          "launchApp",
				Name:        "Launch App",
				Description: "Launch an application; dialer and browser packages use extraData as number or URL",
				Parameters: []types.Parameter{
					{Name: "packageName", Type: types.ParamString, Description: "Application identifier", Required: true},
					{Name: "extraData", Type: types.ParamString, Description: "Phone number or URL for special packages", Required: false},
				},
				Returns: "boolean",
			},
		},
	}
}

// Launch issues the intent for req and reports whether one was issued.
// Host start errors are logged and not reported.
func (d *Dispatcher) Launch(ctx context.Context, req Request) bool {
	for _, route := range d.routes {
		if route.Identifier != req.Identifier {
			continue
		}
		intent, ok := route.Strategy(req.payload())
		if !ok {
			d.logger.Debug("Launch payload rejected", zap.String("package", req.Identifier))
			return false
		}
		d.start(ctx, intent)
		return true
	}

	intent, ok := d.source.LaunchIntent(ctx, req.Identifier)
	if !ok || intent == nil {
		d.logger.Debug("No launch entry point", zap.String("package", req.Identifier))
		return false
	}
	d.start(ctx, *intent)
	return true
}

func (d *Dispatcher) start(ctx context.Context, intent host.Intent) {
	if err := d.launcher.Start(ctx, intent); err != nil {
		d.logger.Warn("Host rejected intent",
			zap.String("action", string(intent.Action)),
			zap.String("package", intent.Package),
			zap.Error(err))
	}
}
