package util

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	loggerOnce   sync.Once
)

// InitLogger initializes the global logger. In debug mode entries are
// mirrored to stderr as text; the log file, when writable, receives JSON
// entries.
func InitLogger(logLevel, logFile string, debugToConsole bool) {
	loggerOnce.Do(func() {
		logger := NewLogger(logLevel)

		if debugToConsole {
			logger.AddOutput(NewConsoleOutput(os.Stderr, FormatText))
		}

		if logFile != "" {
			if fileOutput, err := NewFileOutput(logFile, FormatJSON); err == nil {
				logger.AddOutput(fileOutput)
			}
		}

		globalLogger = logger
	})
}

// LogInfo convenience functions for logging
func LogInfo(msg string) {
	if globalLogger != nil {
		globalLogger.Info(msg)
	}
}

func LogInfof(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Infof(format, args...)
	}
}

func LogDebug(msg string) {
	if globalLogger != nil {
		globalLogger.Debug(msg)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

func LogError(msg string) {
	if globalLogger != nil {
		globalLogger.Error(msg)
	}
}
