package port

// Logger defines a common logging interface for the application.
// Args are alternating key/value pairs, as in log/slog.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
