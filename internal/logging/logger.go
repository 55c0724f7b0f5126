// Package logging provides structured logging for vigilo.
//
// It favors explicit, boring Go over clever abstractions: named loggers,
// five levels (DEBUG, INFO, WARN, ERROR, FATAL), optional key-value fields.
//
// Initialize the logger once at startup:
//
//	logging.Initialize("info")
//
// Then get a named logger per component:
//
//	logger := logging.GetLogger("rules.engine")
//	logger.Info("evaluated %d situations", n)
//	logger.InfoWithFields("finding recorded",
//	    logging.Field("kind", kind),
//	    logging.Field("position", pos),
//	)
//
// Per-package overrides let a single component be turned up to debug:
//
//	logging.Initialize("info", map[string]string{"causality.*": "debug"})
//
// Logger instances are immutable; WithField returns a new instance, so
// loggers are safe to share across goroutines.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the logging level.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// LogField is a structured logging field.
type LogField struct {
	Key   string
	Value interface{}
}

// Field creates a structured logging field.
func Field(key string, value interface{}) LogField {
	return LogField{Key: key, Value: value}
}

// Logger writes leveled, named log lines.
type Logger struct {
	level  LogLevel
	name   string
	fields map[string]interface{}
}

var (
	globalLogger *Logger
	initOnce     sync.Once
	// exitFunc is called by Fatal. Overridable for tests.
	exitFunc = os.Exit

	packageLevels   = make(map[string]LogLevel)
	packageLevelsMu sync.RWMutex
)

// Initialize sets up the global logger with a default level and optional
// per-package overrides, e.g. {"causality.*": "debug"}.
func Initialize(levelStr string, overrides ...map[string]string) error {
	level, err := parseLevel(levelStr)
	if err != nil {
		return err
	}
	globalLogger = &Logger{level: level, name: "vigilo"}

	if len(overrides) > 0 && overrides[0] != nil {
		parsed := make(map[string]LogLevel, len(overrides[0]))
		for pkg, s := range overrides[0] {
			l, err := parseLevel(s)
			if err != nil {
				return fmt.Errorf("invalid log level for package %q: %w", pkg, err)
			}
			parsed[pkg] = l
		}
		packageLevelsMu.Lock()
		packageLevels = parsed
		packageLevelsMu.Unlock()
	}
	return nil
}

// GetLogger returns a logger with the given component name. The global
// logger is lazily initialized at INFO on first use.
func GetLogger(name string) *Logger {
	initOnce.Do(func() {
		if globalLogger == nil {
			_ = Initialize("info")
		}
	})
	return &Logger{
		level:  globalLogger.level,
		name:   name,
		fields: make(map[string]interface{}),
	}
}

// packageLevel returns the override level for a logger name, or -1.
// Supports exact names and trailing-wildcard patterns like "rules.*".
func packageLevel(name string) LogLevel {
	packageLevelsMu.RLock()
	defer packageLevelsMu.RUnlock()

	if level, ok := packageLevels[name]; ok {
		return level
	}
	best := ""
	for pattern := range packageLevels {
		if !strings.HasSuffix(pattern, ".*") {
			continue
		}
		prefix := strings.TrimSuffix(pattern, ".*")
		if strings.HasPrefix(name, prefix+".") && len(pattern) > len(best) {
			best = pattern
		}
	}
	if best != "" {
		return packageLevels[best]
	}
	return LogLevel(-1)
}

func (l *Logger) shouldLog(level LogLevel) bool {
	if pkgLevel := packageLevel(l.name); pkgLevel >= 0 {
		return level >= pkgLevel
	}
	return level >= l.level
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(DEBUG) {
		l.logf("DEBUG", msg, args...)
	}
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.shouldLog(INFO) {
		l.logf("INFO", msg, args...)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(WARN) {
		l.logf("WARN", msg, args...)
	}
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	if l.shouldLog(ERROR) {
		l.logf("ERROR", msg, args...)
	}
}

// ErrorWithErr logs an error message with an error object.
func (l *Logger) ErrorWithErr(msg string, err error) {
	if l.shouldLog(ERROR) {
		l.logf("ERROR", "%s - %v", msg, err)
	}
}

// Fatal logs a fatal message and exits with code 1.
func (l *Logger) Fatal(msg string, args ...interface{}) {
	if l.shouldLog(FATAL) {
		l.logf("FATAL", msg, args...)
		exitFunc(1)
	}
}

// WithField returns a new logger carrying an additional persistent field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	n := &Logger{level: l.level, name: l.name, fields: cloneFields(l.fields)}
	n.fields[key] = value
	return n
}

// DebugWithFields logs a debug message with structured fields.
func (l *Logger) DebugWithFields(msg string, fields ...LogField) {
	if l.shouldLog(DEBUG) {
		l.logWithFields("DEBUG", msg, fields...)
	}
}

// InfoWithFields logs an info message with structured fields.
func (l *Logger) InfoWithFields(msg string, fields ...LogField) {
	if l.shouldLog(INFO) {
		l.logWithFields("INFO", msg, fields...)
	}
}

// WarnWithFields logs a warning message with structured fields.
func (l *Logger) WarnWithFields(msg string, fields ...LogField) {
	if l.shouldLog(WARN) {
		l.logWithFields("WARN", msg, fields...)
	}
}

// ErrorWithFields logs an error message with structured fields.
func (l *Logger) ErrorWithFields(msg string, fields ...LogField) {
	if l.shouldLog(ERROR) {
		l.logWithFields("ERROR", msg, fields...)
	}
}

func (l *Logger) logWithFields(level, msg string, fields ...LogField) {
	merged := cloneFields(l.fields)
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	l.writeLog(level, msg, merged)
}

func parseLevel(levelStr string) (LogLevel, error) {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return -1, fmt.Errorf("invalid level: %s (must be debug, info, warn, error or fatal)", levelStr)
	}
}

func cloneFields(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
