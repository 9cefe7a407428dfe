// logger.go
package main

import (
	"log"
	"os"
	"strings"
)

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var currentLogLevel = levelInfo

// initLogLevel reads LOG_LEVEL (debug|info|warn|error). Defaults to info.
func initLogLevel() {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		currentLogLevel = levelDebug
	case "warn":
		currentLogLevel = levelWarn
	case "error":
		currentLogLevel = levelError
	default:
		currentLogLevel = levelInfo
	}
}

func LogDebug(format string, args ...interface{}) {
	if currentLogLevel <= levelDebug {
		log.Printf("🔍 "+format, args...)
	}
}

func LogInfo(format string, args ...interface{}) {
	if currentLogLevel <= levelInfo {
		log.Printf(format, args...)
	}
}

func LogWarn(format string, args ...interface{}) {
	if currentLogLevel <= levelWarn {
		log.Printf("⚠️ "+format, args...)
	}
}

func LogError(format string, args ...interface{}) {
	if currentLogLevel <= levelError {
		log.Printf("❌ "+format, args...)
	}
}
