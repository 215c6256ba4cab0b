// Package logger provides the leveled console logger used by ls_rtplan and dcmcp.
//
// Messages below the configured level are dropped. Output lines are prefixed
// with [HH:MM:SS] timestamps and the level label is colored when writing to a
// terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger writes leveled, timestamped messages to a writer.
// It is safe for concurrent use.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// NewNoOpLogger returns a logger that discards everything.
func NewNoOpLogger() *ConsoleLogger {
	return NewConsoleLogger(nil, "error")
}

// LevelForVerbosity maps a --verbose flag to a log level.
func LevelForVerbosity(verbose bool) string {
	if verbose {
		return "debug"
	}
	return "warn"
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// fatih/color already folds in TTY detection and NO_COLOR
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// Level returns the effective log level.
func (cl *ConsoleLogger) Level() string {
	return cl.logLevel
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

func (cl *ConsoleLogger) LogDebugf(format string, args ...interface{}) {
	cl.logWithLevel("DEBUG", fmt.Sprintf(format, args...))
}

func (cl *ConsoleLogger) LogInfof(format string, args ...interface{}) {
	cl.logWithLevel("INFO", fmt.Sprintf(format, args...))
}

func (cl *ConsoleLogger) LogWarnf(format string, args ...interface{}) {
	cl.logWithLevel("WARN", fmt.Sprintf(format, args...))
}

// DebugWriter returns an io.Writer that logs every line written to it at
// debug level. It is meant for libraries that only report through a writer.
func (cl *ConsoleLogger) DebugWriter() io.Writer {
	return debugWriter{cl}
}

type debugWriter struct {
	cl *ConsoleLogger
}

func (w debugWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			w.cl.LogDebug(line)
		}
	}
	return len(p), nil
}

// logWithLevel logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl == nil || cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with a colored level label.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// timestamp returns the current time formatted as HH:MM:SS.
func timestamp() string {
	return time.Now().Format("15:04:05")
}
