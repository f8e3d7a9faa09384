package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// L is the global logger instance
var L *zap.Logger = zap.NewNop()

// Init configures the global logger. Production mode emits JSON,
// development mode a human-readable console format.
func Init(production bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if production {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	L = l
	return nil
}

// Sync flushes any buffered log entries. Call before the process exits.
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}
