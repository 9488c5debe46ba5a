package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Init mirrors log output to stdout and a daily file under dir.
// Without Init, messages go to fiber's default writer.
func Init(dir string) (io.Closer, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	fileName := filepath.Join(dir, fmt.Sprintf("app_%s.log", time.Now().Format("02-01-2006")))
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	log.SetLevel(log.LevelInfo)
	log.Info("🚀 Logger initialized successfully!")
	return logFile, nil
}

func Success(message string) {
	log.Info("✅ " + message)
}

func Error(message string, err error) {
	if err != nil {
		log.Error("❌ " + message + ": " + err.Error())
	} else {
		log.Error("❌ " + message)
	}
}

func Warning(message string) {
	log.Warn("⚠️ " + message)
}

func Debug(message string) {
	log.Debug("🐛 " + message)
}

func Info(message string) {
	log.Info("ℹ️ " + message)
}

func Fatal(message string) {
	log.Fatal("💥 " + message)
}

func Printf(format string, args ...interface{}) {
	log.Info(fmt.Sprintf("📝 "+format, args...))
}

func PrintfWithLevel(level log.Level, format string, args ...interface{}) {
	switch level {
	case log.LevelError:
		log.Error(fmt.Sprintf("❌ "+format, args...))
	case log.LevelWarn:
		log.Warn(fmt.Sprintf("⚠️ "+format, args...))
	case log.LevelDebug:
		log.Debug(fmt.Sprintf("🐛 "+format, args...))
	default:
		log.Info(fmt.Sprintf("ℹ️ "+format, args...))
	}
}
