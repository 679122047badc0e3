package ports

import (
	"image"
	"time"
)

// Logger provides structured logging capabilities.
// Implementations can wrap zerolog or any other logging library.
type Logger interface {
	// Debug logs a debug-level message with fields.
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with fields.
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with fields.
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with fields.
	Error(msg string, fields ...Field)
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Stringer creates a field from a fmt.Stringer-ish value.
func Stringer(key string, value interface{ String() string }) Field {
	return Field{Key: key, Value: value.String()}
}

// Rect creates a field describing a rectangle.
func Rect(key string, value image.Rectangle) Field {
	return Field{Key: key, Value: value.String()}
}

// Err creates an error field with key "error".
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any creates a field with any value.
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
