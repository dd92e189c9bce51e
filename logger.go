package go_symcrypt

import (
	"fmt"
	"os"

	"github.com/go-i2p/logger"
)

// Log level constants accepted by LogInit
const (
	DEBUG   = 1 << 4
	INFO    = 1 << 5
	WARNING = 1 << 6
	ERROR   = 1 << 7
	FATAL   = 1 << 8
)

// debugLevels maps LogInit levels to DEBUG_I2P values.
var debugLevels = map[int]string{
	DEBUG:   "debug",
	INFO:    "debug",
	WARNING: "warn",
	ERROR:   "error",
	FATAL:   "fatal",
}

// logInstance is the package logger. All output goes through go-i2p/logger,
// which is silent unless DEBUG_I2P is set.
var logInstance = logger.GetGoI2PLogger()

// LogInit reconfigures the package logger for level. Unknown levels enable
// debug output. FATAL also sets WARNFAIL_I2P, turning warnings into failures.
func LogInit(level int) {
	value, ok := debugLevels[level]
	if !ok {
		value = "debug"
	}
	os.Setenv("DEBUG_I2P", value)
	if level == FATAL {
		os.Setenv("WARNFAIL_I2P", "true")
	}
	logger.InitializeGoI2PLogger()
	logInstance = logger.GetGoI2PLogger()
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelWarn
	levelError
)

// logf formats message only when args are given, so messages containing '%'
// pass through untouched.
func logf(level logLevel, message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	switch level {
	case levelWarn:
		logInstance.Warn(message)
	case levelError:
		logInstance.Error(message)
	default:
		logInstance.Debug(message)
	}
}

// Debug logs a debug message with optional arguments.
func Debug(message string, args ...interface{}) { logf(levelDebug, message, args...) }

// Warning logs a warning message with optional arguments.
func Warning(message string, args ...interface{}) { logf(levelWarn, message, args...) }

// Error logs an error message with optional arguments.
func Error(message string, args ...interface{}) { logf(levelError, message, args...) }
