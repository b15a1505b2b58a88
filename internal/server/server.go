package server

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/GriffinCanCode/hostbridge/internal/bridge"
	"github.com/GriffinCanCode/hostbridge/internal/channel"
	"github.com/GriffinCanCode/hostbridge/internal/host"
	"github.com/GriffinCanCode/hostbridge/internal/host/profile"
	"github.com/GriffinCanCode/hostbridge/internal/host/sysfs"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hostbridge/internal/providers/device"
	"github.com/GriffinCanCode/hostbridge/internal/providers/inventory"
	"github.com/GriffinCanCode/hostbridge/internal/providers/launcher"
	"github.com/GriffinCanCode/hostbridge/internal/shared/id"
	"go.uber.org/zap"
)

// Server wires the channel to the host and owns its lifecycle
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	instance id.InstanceID

	device  *profile.Device
	router  *bridge.Router
	channel *channel.Channel

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	instance := id.NewInstanceID()
	logger = &logging.Logger{Logger: logger.With(zap.String("instance", instance.String()))}

	dev, err := profile.Open(cfg.Host.Profile, logger.ForComponent("profile"))
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}

	caps := buildHost(cfg, dev, logger)
	if err := caps.Validate(); err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()
	router, err := bridge.NewRouter(bridge.Components{
		Inventory: inventory.NewProvider(caps.Inventory, logger.ForComponent("inventory")),
		Launcher: launcher.NewDispatcher(caps.Inventory, caps.Launcher,
			launcher.DefaultRoutes(cfg.Launch.Dialers, cfg.Launch.Browsers), logger.ForComponent("launcher")),
		Device: device.NewProvider(caps, logger.ForComponent("device")),
	}, bridge.Options{BrightnessStep: cfg.Device.BrightnessStep}, logger.ForComponent("router"), metrics)
	if err != nil {
		return nil, err
	}

	ch := channel.New(cfg.Channel.Name, router, logger.ForComponent("channel")).
		WithMaxMessageBytes(cfg.Channel.MaxMessageBytes)

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		instance: instance,
		device:   dev,
		router:   router,
		channel:  ch,
	}
	dev.OnFinish(s.stop)

	logger.Info("Bridge ready",
		zap.String("channel", cfg.Channel.Name),
		zap.String("backend", cfg.Host.Backend),
		zap.String("profile", cfg.Host.Profile))

	return s, nil
}

// buildHost takes every capability from the profile device and, for the
// sysfs backend, replaces torch and brightness with the kernel's.
func buildHost(cfg *config.Config, dev *profile.Device, logger *logging.Logger) host.Host {
	caps := dev.Capabilities()
	if cfg.Host.Backend != config.BackendSysfs {
		return caps
	}

	backlight := sysfs.NewBacklight(cfg.Host.BacklightRoot, logger.ForComponent("backlight"))
	caps.Torch = sysfs.NewTorch(cfg.Host.LEDRoot, logger.ForComponent("torch"))
	caps.Brightness = backlight
	caps.Permissions = sysfs.Permissions{Backlight: backlight, Fallback: caps.Permissions}
	return caps
}

// Run serves the channel until in is exhausted, ctx is cancelled or the
// activities are finished.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	return s.channel.Serve(ctx, in, out)
}

// stop ends Run after the in-flight response is written
func (s *Server) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.logger.Info("Activities finished, stopping channel")
}

// Device returns the profile device behind the host
func (s *Server) Device() *profile.Device {
	return s.device
}

// Router returns the dispatch router
func (s *Server) Router() *bridge.Router {
	return s.router
}

// Metrics returns the server's metrics
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Close flushes metrics and logs
func (s *Server) Close() error {
	var firstErr error
	if path := s.cfg.Metrics.Textfile; path != "" {
		if err := s.metrics.WriteTextfile(path); err != nil {
			s.logger.Error("Failed to write metrics textfile", zap.String("path", path), zap.Error(err))
			firstErr = err
		}
	}
	_ = s.logger.Sync()
	return firstErr
}
