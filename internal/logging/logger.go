package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Version is reported in the startup line.
const Version = "0.2.0"

var (
	// Logger is the global logger instance. Nil until Init or InitWriter.
	Logger *log.Logger

	// logFile is the file handle for the log file
	logFile *os.File
)

// Init opens a dated log file under dataDir/logs and points the global
// logger at it. The TUI owns stdout, so nothing is written to the terminal.
func Init(dataDir string) error {
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := fmt.Sprintf("briefing-%s.log", time.Now().Format("2006-01-02"))
	logPath := filepath.Join(logDir, logFileName)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	InitWriter(f, log.DebugLevel)
	Logger.Info("briefing started", "version", Version)
	return nil
}

// InitWriter points the global logger at w. Used by CLI subcommands that
// log to stderr.
func InitWriter(w io.Writer, level log.Level) {
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
}

// Close closes the log file
func Close() {
	if Logger != nil {
		Logger.Info("briefing shutting down")
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
