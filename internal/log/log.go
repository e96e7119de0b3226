package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug Level = iota
	// LevelInfo is for important operational events
	LevelInfo
	// LevelWarn is for warnings that don't stop compilation
	LevelWarn
	// LevelError is for errors that abort compilation
	LevelError
)

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel Level     = LevelInfo

	traceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	plainStyle = lipgloss.NewStyle()
)

// SetOutput sets the output destination (primarily for testing)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// GetLevel returns the current minimum log level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// SetColors sets the colors of the trace, warning and error tags
func SetColors(trace, warn, err string) {
	mu.Lock()
	defer mu.Unlock()
	traceStyle = traceStyle.Foreground(lipgloss.Color(trace))
	warnStyle = warnStyle.Foreground(lipgloss.Color(warn))
	errorStyle = errorStyle.Foreground(lipgloss.Color(err))
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	log(LevelDebug, "debug", traceStyle, format, args...)
}

// Info logs an info message
func Info(format string, args ...any) {
	log(LevelInfo, "info", plainStyle, format, args...)
}

// Warn logs a warning
func Warn(format string, args ...any) {
	log(LevelWarn, "warn", warnStyle, format, args...)
}

// Error logs an error
func Error(format string, args ...any) {
	log(LevelError, "error", errorStyle, format, args...)
}

// Trace logs template trace output. It ignores the level because the
// template's own debug flag already decided it should be shown.
func Trace(format string, args ...any) {
	log(LevelError, "trace", traceStyle, format, args...)
}

func log(level Level, tag string, style lipgloss.Style, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel || output == nil {
		return
	}

	// Format: [t4go] tag: message
	fmt.Fprintf(output, "[t4go] %s %s\n", style.Render(tag+":"), fmt.Sprintf(format, args...))
}

// TemplateSink adapts the package logger to template.Sink
type TemplateSink struct{}

func (TemplateSink) Trace(format string, args ...any) { Trace(format, args...) }
func (TemplateSink) Warn(format string, args ...any)  { Warn(format, args...) }

// Sink returns a diagnostics sink writing through this package
func Sink() TemplateSink { return TemplateSink{} }
