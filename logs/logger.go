package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrosebr1/pythonfintech/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileHook writes every entry to a rotated file with its own formatter.
// Fields set on the hook are stamped on file entries only, so the console stays short.
type FileHook struct {
	mu        sync.RWMutex
	formatter logrus.Formatter
	writer    io.Writer
	fields    logrus.Fields
}

func newFileHook(writer io.Writer, formatter logrus.Formatter) *FileHook {
	return &FileHook{
		writer:    writer,
		formatter: formatter,
		fields:    logrus.Fields{},
	}
}

// Levels returns all log levels, so the hook is fired for all log entries.
func (h *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *FileHook) setField(key string, value interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fields[key] = value
}

// Fire formats the entry, plus the hook's fields, and writes it to the file.
func (h *FileHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	e := entry
	if len(h.fields) > 0 {
		// WithFields copies Data; entry itself is still headed for the console.
		e = entry.WithFields(h.fields)
		e.Level = entry.Level
		e.Message = entry.Message
		e.Caller = entry.Caller
	}
	h.mu.RUnlock()

	formattedBytes, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(formattedBytes)
	return err
}

var (
	log              = newDefaultLogger()
	fileHookInstance *FileHook
)

// newDefaultLogger is used until Init runs, so calls from tests and libraries never hit a nil logger.
func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init replaces the default logger with a console logger plus a rotated log file at logFilePath.
func Init(cfg *config.LogConfig, logFilePath string) error {
	l := logrus.New()
	parsedLevel, levelErr := logrus.ParseLevel(cfg.LogLevel)
	if levelErr != nil {
		parsedLevel = logrus.InfoLevel
	}
	l.SetLevel(parsedLevel)

	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:            true,
		FullTimestamp:          true,
		TimestampFormat:        "2006-01-02 15:04:05",
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	l.SetOutput(os.Stdout)

	// Silence the global logrus instance so stray logrus.Info calls produce nothing.
	logrus.SetOutput(io.Discard)
	logrus.StandardLogger().Hooks = make(logrus.LevelHooks)

	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	lumberjackLogger := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	fileFormatter := &logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}

	fileHookInstance = newFileHook(lumberjackLogger, fileFormatter)
	l.AddHook(fileHookInstance)
	log = l

	if levelErr != nil {
		Warnf("Unknown log level %q, falling back to info.", cfg.LogLevel)
	}
	Debugf("Logging system initialized, writing to %s", logFilePath)
	return nil
}

// Close closes the file hook's underlying writer and restores the default logger.
func Close() {
	Debug("Logging system closed.")
	if fileHookInstance != nil {
		if closer, ok := fileHookInstance.writer.(io.Closer); ok {
			closer.Close()
		}
		fileHookInstance = nil
	}
	log = newDefaultLogger()
}

// SetSession tags every subsequent file log entry with the given session ID.
// It is a no-op before Init.
func SetSession(id string) {
	if fileHookInstance != nil {
		fileHookInstance.setField("session", id)
	}
}

// WithField returns an entry carrying a single structured field.
func WithField(key string, value interface{}) *logrus.Entry { return log.WithField(key, value) }

// WithFields returns an entry carrying structured fields.
func WithFields(fields logrus.Fields) *logrus.Entry { return log.WithFields(fields) }

// Wrapper functions to expose the logger.
func Debug(args ...interface{})                 { log.Debug(args...) }
func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }
func Info(args ...interface{})                  { log.Info(args...) }
func Infof(format string, args ...interface{})  { log.Infof(format, args...) }
func Warn(args ...interface{})                  { log.Warn(args...) }
func Warnf(format string, args ...interface{})  { log.Warnf(format, args...) }
func Error(args ...interface{})                 { log.Error(args...) }
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }
func Fatal(args ...interface{})                 { log.Fatal(args...) }
func Fatalf(format string, args ...interface{}) { log.Fatalf(format, args...) }
