package engine

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is the diagnostic sink RecalculateMap writes to. The rest of
// the module's packages are silent libraries that return errors
// instead — Logger exists only at the engine boundary the embedding
// application is expected to configure.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// slogLogger adapts a *slog.Logger to the Logger interface.
type slogLogger struct {
	base *slog.Logger
}

// DefaultLogger returns a Logger backed by a new slog text handler
// writing to standard error.
func DefaultLogger() Logger {
	return &slogLogger{base: slog.New(slog.NewTextHandler(os.Stderr, nil))}
}

func (l *slogLogger) Debugf(format string, args ...any) { l.base.Debug(fmt.Sprintf(format, args...)) }
func (l *slogLogger) Infof(format string, args ...any)  { l.base.Info(fmt.Sprintf(format, args...)) }
func (l *slogLogger) Warnf(format string, args ...any)  { l.base.Warn(fmt.Sprintf(format, args...)) }
func (l *slogLogger) Errorf(format string, args ...any) { l.base.Error(fmt.Sprintf(format, args...)) }
