// Package logger provides the bot's logging system on top of logrus.
// Every entry carries a module tag and is written to the console with colors,
// to logs/combined.log and logs/error.log, and optionally to Discord webhooks.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelCritical LogLevel = iota
	LevelError
	LevelWarn
	LevelSuccess
	LevelInfo
	LevelDebug
	LevelSystem
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelCritical:
		return "CRITICAL"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelSuccess:
		return "SUCCESS"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelSystem:
		return "SYSTEM"
	default:
		return "UNKNOWN"
	}
}

// Color returns the ANSI color code for the log level
func (l LogLevel) Color() string {
	switch l {
	case LevelCritical:
		return "\033[1;31m"
	case LevelError:
		return "\033[31m"
	case LevelWarn:
		return "\033[33m"
	case LevelSuccess:
		return "\033[32m"
	case LevelInfo:
		return "\033[36m"
	case LevelDebug:
		return "\033[35m"
	case LevelSystem:
		return "\033[34m"
	default:
		return colorReset
	}
}

// DiscordColor returns the Discord embed color for the log level
func (l LogLevel) DiscordColor() int {
	switch l {
	case LevelCritical, LevelError:
		return 0xFF0000
	case LevelWarn:
		return 0xFFFF00
	case LevelSuccess:
		return 0x00FF00
	case LevelInfo:
		return 0x0000FF
	case LevelDebug:
		return 0x800080
	case LevelSystem:
		return 0x808080
	default:
		return 0xFFFFFF
	}
}

// logrusLevel maps a LogLevel onto the logrus level used for filtering
func (l LogLevel) logrusLevel() logrus.Level {
	switch l {
	case LevelCritical, LevelError:
		return logrus.ErrorLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelDebug:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

const (
	colorReset = "\033[0m"

	fieldModule = "module"
	fieldLevel  = "level_name"
)

// Options configures a Logger
type Options struct {
	// LogsDir is where combined.log and error.log are written; empty disables files
	LogsDir string

	ErrorWebhook string
	LogsWebhook  string

	// Level is a logrus level name ("debug", "info", "warn", "error"); default "info"
	Level string

	// Console overrides os.Stdout
	Console io.Writer
}

// Logger is the main logging structure
type Logger struct {
	logrus    *logrus.Logger
	logFile   *os.File
	errorFile *os.File
	webhook   *webhookHook
}

var (
	logger *Logger
	once   sync.Once
)

// Init initializes the global logger instance
func Init(opts Options) *Logger {
	once.Do(func() {
		logger = NewLogger(opts)
	})
	return logger
}

// Get returns the global logger instance. Without Init it logs to the console only.
func Get() *Logger {
	once.Do(func() {
		logger = NewLogger(Options{})
	})
	return logger
}

// NewLogger creates a new Logger instance
func NewLogger(opts Options) *Logger {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	l := &Logger{logrus: logrus.New()}
	l.logrus.SetOutput(console)
	l.logrus.SetFormatter(&lineFormatter{colors: true})
	l.logrus.SetLevel(ParseLevel(opts.Level))

	if opts.LogsDir != "" {
		l.openFiles(opts.LogsDir)
	}

	if opts.ErrorWebhook != "" || opts.LogsWebhook != "" {
		l.webhook = newWebhookHook(opts.ErrorWebhook, opts.LogsWebhook)
		l.logrus.AddHook(l.webhook)
	}

	return l
}

// ParseLevel converts a level name to a logrus level, defaulting to info
func ParseLevel(name string) logrus.Level {
	if name == "" {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(strings.ToLower(name))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (l *Logger) openFiles(dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logs directory: %v\n", err)
		return
	}

	var err error
	l.logFile, err = os.OpenFile(filepath.Join(dir, "combined.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening combined log file: %v\n", err)
	}

	l.errorFile, err = os.OpenFile(filepath.Join(dir, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening error log file: %v\n", err)
	}

	l.logrus.AddHook(&fileHook{combined: l.logFile, errors: l.errorFile})
}

// Logrus returns the underlying logrus logger
func (l *Logger) Logrus() *logrus.Logger {
	return l.logrus
}

// log is the internal logging function
func (l *Logger) log(level LogLevel, message string, prefix string) {
	l.logrus.WithFields(logrus.Fields{
		fieldModule: prefix,
		fieldLevel:  level,
	}).Log(level.logrusLevel(), message)
}

// Close flushes pending webhooks and closes the log files
func (l *Logger) Close() {
	if l.webhook != nil {
		l.webhook.wait()
	}
	if l.logFile != nil {
		l.logFile.Close()
	}
	if l.errorFile != nil {
		l.errorFile.Close()
	}
}

// Critical logs a critical message
func (l *Logger) Critical(message string, prefix string) {
	l.log(LevelCritical, message, prefix)
}

// Error logs an error message
func (l *Logger) Error(message string, prefix string) {
	l.log(LevelError, message, prefix)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, prefix string) {
	l.log(LevelWarn, message, prefix)
}

// Success logs a success message
func (l *Logger) Success(message string, prefix string) {
	l.log(LevelSuccess, message, prefix)
}

// Info logs an info message
func (l *Logger) Info(message string, prefix string) {
	l.log(LevelInfo, message, prefix)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, prefix string) {
	l.log(LevelDebug, message, prefix)
}

// System logs a system message
func (l *Logger) System(message string, prefix string) {
	l.log(LevelSystem, message, prefix)
}

// Package-level functions for convenience

// Critical logs a critical message using the global logger
func Critical(message string, prefix string) {
	Get().Critical(message, prefix)
}

// Error logs an error message using the global logger
func Error(message string, prefix string) {
	Get().Error(message, prefix)
}

// Warn logs a warning message using the global logger
func Warn(message string, prefix string) {
	Get().Warn(message, prefix)
}

// Success logs a success message using the global logger
func Success(message string, prefix string) {
	Get().Success(message, prefix)
}

// Info logs an info message using the global logger
func Info(message string, prefix string) {
	Get().Info(message, prefix)
}

// Debug logs a debug message using the global logger
func Debug(message string, prefix string) {
	Get().Debug(message, prefix)
}

// System logs a system message using the global logger
func System(message string, prefix string) {
	Get().System(message, prefix)
}
