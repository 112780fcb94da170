package logger

import "time"

// NoOpLogger is a logger that does nothing. Useful as a default in
// tests and library callers that do not wire logging.
type NoOpLogger struct{}

// NewNoOp creates a new no-op logger instance.
func NewNoOp() Interface {
	return &NoOpLogger{}
}

// Debug does nothing.
func (l *NoOpLogger) Debug(msg string, fields ...any) {}

// Info does nothing.
func (l *NoOpLogger) Info(msg string, fields ...any) {}

// Warn does nothing.
func (l *NoOpLogger) Warn(msg string, fields ...any) {}

// Error does nothing.
func (l *NoOpLogger) Error(msg string, fields ...any) {}

// With returns the same logger.
func (l *NoOpLogger) With(fields ...any) Interface { return l }

// WithComponent returns the same logger.
func (l *NoOpLogger) WithComponent(component string) Interface { return l }

// WithRequestID returns the same logger.
func (l *NoOpLogger) WithRequestID(requestID string) Interface { return l }

// WithError returns the same logger.
func (l *NoOpLogger) WithError(err error) Interface { return l }

// WithDuration returns the same logger.
func (l *NoOpLogger) WithDuration(duration time.Duration) Interface { return l }
