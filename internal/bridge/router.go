package bridge

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hostbridge/internal/providers/device"
	"github.com/GriffinCanCode/hostbridge/internal/providers/inventory"
	"github.com/GriffinCanCode/hostbridge/internal/providers/launcher"
	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
	"go.uber.org/zap"
)

// State is the router lifecycle state
type State int32

const (
	StateIdle State = iota
	StateDispatching
)

func (s State) String() string {
	if s == StateDispatching {
		return "dispatching"
	}
	return "idle"
}

// Components are the providers the router dispatches to
type Components struct {
	Inventory *inventory.Provider
	Launcher  *launcher.Dispatcher
	Device    *device.Provider
}

// Options tune operation behavior
type Options struct {
	// BrightnessStep is the delta used by enableDarkMode and enableLightMode
	BrightnessStep int
}

// Router dispatches one request at a time
type Router struct {
	mu    sync.Mutex
	state atomic.Int32

	components Components
	tools      map[Operation]types.Tool
	services   []types.Service
	opts       Options
	logger     *zap.Logger
	metrics    *monitoring.Metrics
}

// NewRouter creates a router. Every operation must be described by exactly
// one component tool, and every tool must name a known operation.
func NewRouter(c Components, opts Options, logger *zap.Logger, metrics *monitoring.Metrics) (*Router, error) {
	if c.Inventory == nil || c.Launcher == nil || c.Device == nil {
		return nil, fmt.Errorf("router requires inventory, launcher and device components")
	}
	if opts.BrightnessStep <= 0 {
		return nil, fmt.Errorf("brightness step must be positive, got %d", opts.BrightnessStep)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Router{
		components: c,
		tools:      make(map[Operation]types.Tool, opCount),
		opts:       opts,
		logger:     logger,
		metrics:    metrics,
	}

	r.services = []types.Service{
		c.Inventory.Definition(),
		c.Launcher.Definition(),
		c.Device.Definition(),
	}
	for _, svc := range r.services {
		for _, tool := range svc.Tools {
			op := ParseOperation(tool.ID)
			if !op.Known() {
				return nil, fmt.Errorf("service %s declares unknown operation %q", svc.ID, tool.ID)
			}
			if _, dup := r.tools[op]; dup {
				return nil, fmt.Errorf("operation %s declared twice", op)
			}
			r.tools[op] = tool
		}
	}
	for _, op := range Operations() {
		if _, ok := r.tools[op]; !ok {
			return nil, fmt.Errorf("operation %s has no serving component", op)
		}
	}

	return r, nil
}

// Services returns the component definitions
func (r *Router) Services() []types.Service {
	return r.services
}

// State reports whether a request is in flight
func (r *Router) State() State {
	return State(r.state.Load())
}

// Dispatch answers one request. Unknown operations never reach a component.
func (r *Router) Dispatch(ctx context.Context, method string, args map[string]interface{}) *types.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setState(StateDispatching)
	defer r.setState(StateIdle)

	op := ParseOperation(method)
	timer := monitoring.NewTimer(r.metrics, op.String())
	start := time.Now()

	var result *types.Result
	if op.Known() {
		result = r.dispatch(ctx, op, args)
	} else {
		result = types.Unimplemented(method)
	}
	timer.Stop(result)

	fields := []zap.Field{
		zap.String("operation", method),
		zap.String("status", string(result.Status())),
		zap.Duration("duration", time.Since(start)),
	}
	if result.Failure != nil {
		fields = append(fields, zap.String("code", result.Failure.Code), zap.String("message", result.Failure.Message))
		r.logger.Info("Request failed", fields...)
	} else {
		r.logger.Debug("Request answered", fields...)
	}

	return result
}

func (r *Router) setState(s State) {
	r.state.Store(int32(s))
	r.metrics.SetDispatching(s == StateDispatching)
}

func (r *Router) dispatch(ctx context.Context, op Operation, args map[string]interface{}) *types.Result {
	if err := validate(r.tools[op], args); err != nil {
		return r.failure(op, err)
	}

	inv, dev := r.components.Inventory, r.components.Device

	switch op {
	case OpGetInstalledApps:
		records, err := inv.List(ctx)
		if err != nil {
			return r.failure(op, err)
		}
		return types.Ok(records)

	case OpGetInstalledAppNames:
		names, err := inv.Names(ctx)
		if err != nil {
			return r.failure(op, err)
		}
		return types.Ok(names)

	case OpGetSingleAppInfoByName:
		name := stringArg(args, "appName")
		rec, err := inv.FindByName(ctx, name)
		if err != nil {
			return r.failure(op, err)
		}
		if rec == nil {
			return r.failure(op, types.NewError(types.KindNotFound, "no application named %q", name))
		}
		return types.Ok(*rec)

	case OpLaunchApp:
		launched := r.components.Launcher.Launch(ctx, launcher.Request{
			Identifier: stringArg(args, "packageName"),
			Payload:    optionalString(args, "extraData"),
		})
		return types.Ok(launched)

	case OpTurnOnFlashlight:
		if err := dev.TorchOn(ctx); err != nil {
			return r.failure(op, err)
		}
		return types.Ok("Flashlight turned on")

	case OpTurnOffFlashlight:
		if err := dev.TorchOff(ctx); err != nil {
			return r.failure(op, err)
		}
		return types.Ok("Flashlight turned off")

	case OpSetVibrationMode:
		return r.ringer(ctx, op, host.RingerVibrate, "Vibration mode enabled")

	case OpSetSoundMode:
		return r.ringer(ctx, op, host.RingerNormal, "Sound mode enabled")

	case OpSetSilentMode:
		return r.ringer(ctx, op, host.RingerSilent, "Silent mode enabled")

	case OpEnableDarkMode:
		return r.brightness(ctx, op, -r.opts.BrightnessStep)

	case OpEnableLightMode:
		return r.brightness(ctx, op, r.opts.BrightnessStep)

	case OpAdjustBrightness:
		return r.brightness(ctx, op, intArg(args, "delta"))

	case OpGetOutApp:
		dev.Terminate(ctx)
		return types.Ok("App closed")
	}

	return types.Unimplemented(op.String())
}

func (r *Router) ringer(ctx context.Context, op Operation, mode host.RingerMode, status string) *types.Result {
	if err := r.components.Device.SetRingerMode(ctx, mode); err != nil {
		return r.failure(op, err)
	}
	return types.Ok(status)
}

func (r *Router) brightness(ctx context.Context, op Operation, delta int) *types.Result {
	level, err := r.components.Device.AdjustBrightness(ctx, delta)
	if err != nil {
		return r.failure(op, err)
	}
	return types.Ok(fmt.Sprintf("Brightness set to %d", level))
}

// failure converts a component error; host causes stay in the log
func (r *Router) failure(op Operation, err error) *types.Result {
	kind := types.KindOf(err)
	if kind == types.KindDeviceUnavailable {
		r.logger.Warn("Host action failed", zap.String("operation", op.String()), zap.Error(err))
	}
	return types.Fail(kind, op.FailureCode(kind), types.MessageOf(err))
}
