package logger

// noOpLogger discards everything. Fatal still panics so a test cannot
// silently continue past a fatal condition.
type noOpLogger struct{}

// NewNoOpLogger creates a logger that does nothing (useful for tests)
func NewNoOpLogger() Logger {
	return &noOpLogger{}
}

func (n *noOpLogger) Info(msg string, fields ...Field)  {}
func (n *noOpLogger) Error(msg string, fields ...Field) {}
func (n *noOpLogger) Debug(msg string, fields ...Field) {}
func (n *noOpLogger) Warn(msg string, fields ...Field)  {}
func (n *noOpLogger) Sync() error                       { return nil }
func (n *noOpLogger) Fatal(msg string, fields ...Field) {
	panic("fatal log message: " + msg)
}
