// Package logger provides structured logging for the application,
// backed by zap.
package logger

// Level represents the logging level.
type Level string

const (
	// DebugLevel logs debug messages.
	DebugLevel Level = "debug"
	// InfoLevel logs info messages.
	InfoLevel Level = "info"
	// WarnLevel logs warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel logs error messages.
	ErrorLevel Level = "error"
)

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level.
	Level Level `json:"level" yaml:"level"`
	// Encoding selects console or json output.
	Encoding string `json:"encoding" yaml:"encoding"`
	// Development enables development-friendly formatting.
	Development bool `json:"development" yaml:"development"`
}
