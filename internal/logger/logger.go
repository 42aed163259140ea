package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until Init is called.
var Log = zap.NewNop()

// level is shared by every logger Init builds, so SetDebug changes verbosity
// without changing the encoder.
var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Init builds the shared logger. LIGHTGRID_DEBUG=1 switches to the development
// encoder with debug level enabled.
func Init() {
	var cfg zap.Config
	if os.Getenv("LIGHTGRID_DEBUG") == "1" {
		cfg = zap.NewDevelopmentConfig()
		level.SetLevel(zap.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = level

	l, err := cfg.Build()
	if err != nil {
		// Keep the no-op logger, there is nowhere to report this.
		return
	}
	Log = l
}

// SetDebug toggles debug entries on the logger built by Init.
func SetDebug(debug bool) {
	if debug {
		level.SetLevel(zap.DebugLevel)
	} else {
		level.SetLevel(zap.InfoLevel)
	}
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
