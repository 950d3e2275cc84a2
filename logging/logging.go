package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	debugLogger = newDefaultLogger()
	logFile     *os.File
	mu          sync.Mutex
	isSetup     bool
)

// newDefaultLogger returns the logger used before SetupLogger is called:
// only warnings and errors, written to stderr.
func newDefaultLogger() *log.Logger {
	l := log.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(log.WarnLevel)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return l
}

// SetupLogger switches the logger to debug level and writes every entry to
// the specified log file
func SetupLogger(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if isSetup {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	debugLogger.SetOutput(logFile)
	debugLogger.SetLevel(log.DebugLevel)
	debugLogger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})

	debugLogger.Debugf("--- ImageCompare Debug Log Started at %s ---", time.Now().Format(time.RFC3339))

	isSetup = true
	return nil
}

// SetOutput redirects the logger, mostly useful in tests
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	debugLogger.SetOutput(w)
}

// CloseLogger closes the log file and restores the stderr logger
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		debugLogger.Debugf("--- ImageCompare Debug Log Closed at %s ---", time.Now().Format(time.RFC3339))
		logFile.Close()
		logFile = nil
		isSetup = false
		debugLogger = newDefaultLogger()
	}
}

// DebugEnabled reports whether debug entries are being written
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debugLogger.IsLevelEnabled(log.DebugLevel)
}

// LogInfo logs an information message
func LogInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	debugLogger.Infof(format, args...)
}

// DebugLog logs a message if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	debugLogger.Debugf(format, args...)
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	debugLogger.Warnf(format, args...)
}

// LogMetric logs a single computed score together with how long it took
func LogMetric(name string, value float64, elapsed time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	debugLogger.WithFields(log.Fields{
		"metric":  name,
		"value":   value,
		"elapsed": elapsed,
	}).Debug("metric computed")
}
