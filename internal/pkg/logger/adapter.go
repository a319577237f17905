package logger

import (
	"io"
	"log/slog"

	"synth_dashboard/internal/app/port"
)

// slogAdapter implements port.Logger on top of slog.
// A nil logger delegates to the package-level logger at call time.
type slogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns a port.Logger backed by the global logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewComponentLogger returns a port.Logger that tags every record with the component name.
func NewComponentLogger(component string) port.Logger {
	ensureInitialized()
	return &slogAdapter{logger: globalLogger.With("component", component)}
}

// NewNopLogger returns a port.Logger that discards everything.
func NewNopLogger() port.Logger {
	return &slogAdapter{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (a *slogAdapter) Info(msg string, args ...any) {
	if a.logger == nil {
		Info(msg, args...)
		return
	}
	a.logger.Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	if a.logger == nil {
		Debug(msg, args...)
		return
	}
	a.logger.Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	if a.logger == nil {
		Warn(msg, args...)
		return
	}
	a.logger.Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	if a.logger == nil {
		Error(msg, args...)
		return
	}
	a.logger.Error(msg, args...)
}
