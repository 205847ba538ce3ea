package logger

import (
	"go.uber.org/zap"
)

// Log is the process-wide logger. It defaults to a no-op logger so that
// packages (and their tests) can log without calling Init first.
var Log = zap.NewNop()

// Init replaces the process logger. Development builds get the human-readable
// console encoder, everything else gets production JSON.
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = Log.Sync()
}
