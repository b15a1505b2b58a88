// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// All output goes to stderr by default; stdout is reserved for the
// request channel.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Bridge ready", zap.String("channel", name))
//	logger.Error("Profile load failed", zap.Error(err))
package logging
