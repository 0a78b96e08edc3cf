package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
)

// Logger is a colored console logger scoped to one component.
type Logger struct {
	serviceName string
}

func New(serviceName string) *Logger {
	return &Logger{serviceName: serviceName}
}

func (l *Logger) format(level, msg string) string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s | %-7s | %s:%d | %s | %s",
		time.Now().Format("2006-01-02 15:04:05"),
		level,
		filepath.Base(file),
		line,
		l.serviceName,
		msg,
	)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	color.Cyan(l.format("INFO", fmt.Sprintf(msg, args...)))
}

func (l *Logger) Success(msg string, args ...interface{}) {
	color.Green(l.format("SUCCESS", fmt.Sprintf(msg, args...)))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	color.Yellow(l.format("WARN", fmt.Sprintf(msg, args...)))
}

// Error logs and returns the wrapped error so call sites can do
// `return log.Error("...", err)`.
func (l *Logger) Error(msg string, err error, args ...interface{}) error {
	args = append(args, err)
	color.Red(l.format("ERROR", fmt.Sprintf(msg+": %v", args...)))
	return fmt.Errorf("%s: %w", msg, err)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	color.Magenta(l.format("DEBUG", fmt.Sprintf(msg, args...)))
}
