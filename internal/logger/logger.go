// Package logger provides the process-wide levelled logger, backed by zap.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the main logger instance.
type Logger struct {
	mu          sync.Mutex
	level       zap.AtomicLevel
	output      io.Writer
	colorEnable bool
	file        *os.File
	filePath    string
	sugar       *zap.SugaredLogger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger with the specified level.
func Init(levelStr string) {
	once.Do(func() {
		defaultLogger = &Logger{
			level:       zap.NewAtomicLevelAt(parseLevel(levelStr)),
			output:      os.Stdout,
			colorEnable: true,
		}
		defaultLogger.rebuild()
	})
}

// InitWithFile initializes the default logger and additionally writes every
// entry, without color codes, to a timestamped file under logDir.
func InitWithFile(levelStr string, logDir string) error {
	Init(levelStr)
	SetLevel(levelStr)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	name := fmt.Sprintf("covmodel_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join(logDir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	if defaultLogger.file != nil {
		_ = defaultLogger.file.Close()
	}
	defaultLogger.file = f
	defaultLogger.filePath = path
	defaultLogger.rebuild()
	return nil
}

// GetLogFilePath returns the path of the current log file, or "" when
// logging to a file is not enabled.
func GetLogFilePath() string {
	if defaultLogger == nil {
		return ""
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	return defaultLogger.filePath
}

// Close flushes pending entries and closes the log file, if any.
func Close() {
	if defaultLogger == nil {
		return
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	_ = defaultLogger.sugar.Sync()
	if defaultLogger.file != nil {
		_ = defaultLogger.file.Close()
		defaultLogger.file = nil
		defaultLogger.filePath = ""
		defaultLogger.rebuild()
	}
}

// SetLevel sets the logging level for the default logger.
func SetLevel(levelStr string) {
	if defaultLogger == nil {
		Init(levelStr)
		return
	}
	defaultLogger.level.SetLevel(parseLevel(levelStr))
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	if defaultLogger == nil {
		Init("info")
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.output = w
	defaultLogger.rebuild()
}

// SetColorEnable enables or disables color output.
func SetColorEnable(enable bool) {
	if defaultLogger == nil {
		Init("info")
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.colorEnable = enable
	defaultLogger.rebuild()
}

// parseLevel converts a string to a zap level. Unknown names fall back to
// info.
func parseLevel(levelStr string) zapcore.Level {
	if strings.EqualFold(levelStr, "warning") {
		return zapcore.WarnLevel
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// rebuild assembles the zap core from the current settings. Callers hold
// l.mu, except during Init.
func (l *Logger) rebuild() {
	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(l.colorEnable), zapcore.Lock(zapcore.AddSync(l.output)), l.level),
	}
	if l.file != nil {
		cores = append(cores, zapcore.NewCore(newEncoder(false), zapcore.AddSync(l.file), l.level))
	}
	l.sugar = zap.New(zapcore.NewTee(cores...)).Sugar()
}

func newEncoder(color bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

func (l *Logger) logger() *zap.SugaredLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	if defaultLogger == nil {
		Init("info")
	}
	defaultLogger.logger().Debugf(format, args...)
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	if defaultLogger == nil {
		Init("info")
	}
	defaultLogger.logger().Infof(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	if defaultLogger == nil {
		Init("info")
	}
	defaultLogger.logger().Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	if defaultLogger == nil {
		Init("info")
	}
	defaultLogger.logger().Errorf(format, args...)
}
