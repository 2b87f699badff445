package logger

import (
	"time"
)

// Log is the process-wide logger. It starts as a zap logger with default
// options and is replaced by Configure or SetGlobalLogger.
var Log Logger

// Field represents a typed key-value pair for structured logging
type Field struct {
	Key   string
	Type  FieldType
	Value any
}

// FieldType defines the type of a log field
type FieldType int

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	ErrorType
	DurationType
	TimeType
	AnyType
	StringsType
)

// Logger defines the interface for structured logging
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	Sync() error
}

// Options controls how Configure builds the global logger.
type Options struct {
	// Development switches the console encoder to the human readable format.
	Development bool
	// File is the rotating log file. Empty disables file output.
	File string
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
}

func String(key, value string) Field {
	return Field{Key: key, Type: StringType, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Type: IntType, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Type: Int64Type, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Type: Float64Type, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Type: BoolType, Value: value}
}

func Err(err error) Field {
	return Field{Key: "error", Type: ErrorType, Value: err}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Type: DurationType, Value: value}
}

func Time(key string, value time.Time) Field {
	return Field{Key: key, Type: TimeType, Value: value}
}

func Any(key string, value any) Field {
	return Field{Key: key, Type: AnyType, Value: value}
}

func Strings(key string, value []string) Field {
	return Field{Key: key, Type: StringsType, Value: value}
}

func init() {
	Log = NewZapLogger(Options{})
}

// Configure replaces the global logger with a zap logger built from opts.
func Configure(opts Options) {
	Log = NewZapLogger(opts)
}

// SetGlobalLogger allows callers (mostly tests) to replace the global logger
func SetGlobalLogger(l Logger) {
	Log = l
}

func Info(msg string, fields ...Field) {
	Log.Info(msg, fields...)
}

func Error(msg string, fields ...Field) {
	Log.Error(msg, fields...)
}

func Debug(msg string, fields ...Field) {
	Log.Debug(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	Log.Warn(msg, fields...)
}

func Fatal(msg string, fields ...Field) {
	Log.Fatal(msg, fields...)
}

// Sync flushes buffered entries of the global logger.
func Sync() error {
	return Log.Sync()
}
