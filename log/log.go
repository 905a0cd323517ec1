package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger            = newLogger()
	console io.Writer = os.Stdout
	logFile *os.File
	logMux  sync.Mutex
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	return l
}

// InitLog 初始化日志，同时输出到控制台和指定文件
// filename为空时只输出到控制台
func InitLog(filename string) error {
	logMux.Lock()
	defer logMux.Unlock()

	if filename == "" {
		logger.SetOutput(console)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(filename), err)
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", filename, err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	logger.SetOutput(io.MultiWriter(console, file))
	return nil
}

// SetOutput 替换控制台输出目标，已打开的日志文件继续写入
func SetOutput(w io.Writer) {
	logMux.Lock()
	defer logMux.Unlock()

	console = w
	if logFile != nil {
		logger.SetOutput(io.MultiWriter(console, logFile))
		return
	}
	logger.SetOutput(console)
}

// WriteLog 写入一条日志
func WriteLog(message string) {
	logger.Info(message)
}

// Warn 写入一条警告日志
func Warn(message string) {
	logger.Warn(message)
}

// WarnError 写入一条附带错误信息的警告日志
func WarnError(err error, message string) {
	logger.WithError(err).Warn(message)
}

// CloseLog 关闭日志文件
func CloseLog() {
	logMux.Lock()
	defer logMux.Unlock()

	if logFile == nil {
		return
	}
	logger.SetOutput(console)
	if err := logFile.Close(); err != nil {
		logger.WithError(err).Error("Failed to close log file")
	}
	logFile = nil
}

// LogEnvironment 记录运行环境
func LogEnvironment() {
	logger.WithFields(logrus.Fields{
		"goVersion": runtime.Version(),
		"os":        runtime.GOOS,
		"arch":      runtime.GOARCH,
		"numCPU":    runtime.NumCPU(),
	}).Info("Environment")
}

// LogSimParameters 记录模拟参数
func LogSimParameters(name string, cycles int, initialLanes [4]int, baseGreen, maxGreen, perVehicle, maxArrival int, seed uint64) {
	logger.WithFields(logrus.Fields{
		"intersection": name,
		"cycles":       cycles,
		"initialLanes": fmt.Sprint(initialLanes),
		"baseGreen":    baseGreen,
		"maxGreen":     maxGreen,
		"perVehicle":   perVehicle,
		"maxArrival":   maxArrival,
		"seed":         seed,
	}).Info("Simulation parameters")
}
