package logging

import (
	"log/slog"
	"time"
)

const (
	FieldComponent = "component"
	FieldJobID     = "job_id"
	FieldStage     = "stage"
	FieldTool      = "tool"
	FieldRemote    = "remote"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Component tags a logger with the subsystem that owns it.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, name))
}

// Command records an external tool invocation at debug level.
func Command(logger *slog.Logger, tool, bin string, args []string) {
	if logger == nil {
		return
	}
	logger.Debug("tool command",
		slog.String(FieldTool, tool),
		slog.String("bin", bin),
		slog.Any("args", args),
	)
}
