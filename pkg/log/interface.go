// Package log provides a structured logging facade for the ensemble
// estimator.
//
// The package defines a minimal Logger interface with key-value structured
// fields, backed by zerolog. Loggers are injectable: the estimator takes a
// Logger at construction, defaulting to the process-wide logger configured
// here. Tests can swap in NewNop to silence output.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "EnsembleTabPFN",
//	)
//	logger.Info("training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 2000,
//	    log.FeaturesKey, 300,
//	)
package log

// Logger is a structured logger with key-value fields, in the style of
// log/slog. Fields are alternating keys (string) and values.
type Logger interface {
	// Debug logs detailed diagnostic information, such as per-iteration
	// progress of the fit loop.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop the operation, such as a
	// contained iteration failure.
	Warn(msg string, fields ...any)

	// Error logs failures that surface to the caller.
	Error(msg string, fields ...any)

	// With returns a new Logger that includes the given fields in every
	// subsequent record.
	With(fields ...any) Logger
}

// Level is a logging level.
type Level int

// Levels, ordered from most to least verbose.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
