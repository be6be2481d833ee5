package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// DefaultLogPath is where the logger writes when nothing else is configured.
// The TUI owns the terminal, so log output never goes to stdout.
const DefaultLogPath = "/tmp/regexblocks.out"

// Logger provides a centralized logging mechanism for regexblocks
type Logger struct {
	warningLogger *log.Logger
	debugLogger   *log.Logger
	errorLogger   *log.Logger
	file          afero.File
	debug         bool
	mu            sync.Mutex
}

var (
	defaultLogger *Logger
	loggerMu      sync.Mutex
)

// GetLogger returns the default logger instance, creating it at
// DefaultLogPath on first use
func GetLogger() *Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if defaultLogger == nil {
		defaultLogger = openOrStderr(afero.NewOsFs(), DefaultLogPath)
	}
	return defaultLogger
}

// Init replaces the default logger with one writing to logPath on fs. It is
// called once configuration is known.
func Init(fs afero.Fs, logPath string, debug bool) *Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if defaultLogger != nil {
		defaultLogger.Close()
	}
	defaultLogger = openOrStderr(fs, logPath)
	defaultLogger.debug = debug
	return defaultLogger
}

func openOrStderr(fs afero.Fs, logPath string) *Logger {
	l, err := NewLogger(fs, logPath)
	if err != nil {
		// Fallback to stderr if we can't create the log file
		log.Printf("Failed to create log file, falling back to stderr: %v", err)
		return newWriterLogger(os.Stderr, nil)
	}
	return l
}

// NewLogger creates a new logger that writes to the specified file
func NewLogger(fs afero.Fs, logPath string) (*Logger, error) {
	// Ensure the directory exists
	dir := filepath.Dir(logPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open or create the log file
	file, err := fs.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return newWriterLogger(file, file), nil
}

func newWriterLogger(w io.Writer, file afero.File) *Logger {
	return &Logger{
		warningLogger: log.New(w, "[WARN] ", log.LstdFlags|log.Lshortfile),
		debugLogger:   log.New(w, "[DEBUG] ", log.LstdFlags|log.Lshortfile),
		errorLogger:   log.New(w, "[ERROR] ", log.LstdFlags|log.Lshortfile),
		file:          file,
		debug:         true,
	}
}

// SetDebug toggles debug output
func (l *Logger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLogger.Printf(format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.debug {
		return
	}
	l.debugLogger.Printf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLogger.Printf(format, args...)
}

// Close closes the log file (if any)
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Convenience functions for the default logger
func Warning(format string, args ...interface{}) {
	GetLogger().Warning(format, args...)
}

func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}
