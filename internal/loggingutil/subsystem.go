package loggingutil

import (
	"pkt.systems/pslog"
)

// subsystemLogger wraps a pslog.Logger so every entry it emits carries a
// fixed "sys" keyval naming the subsystem it was built for (narwhal always
// passes the single literal "narwhal").
type subsystemLogger struct {
	base      pslog.Logger
	subsystem string
	keyvals   []any
}

// WithSubsystem returns a logger that automatically attaches the given
// subsystem name to every log entry. When logger already carries a
// subsystem, the new value replaces it while preserving other contextual
// keyvals.
func WithSubsystem(logger pslog.Logger, subsystem string) pslog.Logger {
	if subsystem == "" {
		return EnsureLogger(logger)
	}
	switch existing := logger.(type) {
	case *subsystemLogger:
		return &subsystemLogger{
			base:      ensureBase(existing.base),
			subsystem: subsystem,
			keyvals:   cloneKeyvals(existing.keyvals),
		}
	default:
		return &subsystemLogger{
			base:      ensureBase(logger),
			subsystem: subsystem,
		}
	}
}

func ensureBase(logger pslog.Logger) pslog.Logger {
	if logger != nil {
		return logger
	}
	return NoopLogger()
}

func cloneKeyvals(src []any) []any {
	if len(src) == 0 {
		return nil
	}
	dst := make([]any, len(src))
	copy(dst, src)
	return dst
}

func (l *subsystemLogger) Trace(msg string, keyvals ...any) {
	l.base.Trace(msg, l.merged(keyvals)...)
}

func (l *subsystemLogger) Debug(msg string, keyvals ...any) {
	l.base.Debug(msg, l.merged(keyvals)...)
}

func (l *subsystemLogger) Info(msg string, keyvals ...any) {
	l.base.Info(msg, l.merged(keyvals)...)
}

func (l *subsystemLogger) Warn(msg string, keyvals ...any) {
	l.base.Warn(msg, l.merged(keyvals)...)
}

func (l *subsystemLogger) Error(msg string, keyvals ...any) {
	l.base.Error(msg, l.merged(keyvals)...)
}

func (l *subsystemLogger) Fatal(msg string, keyvals ...any) {
	l.base.Fatal(msg, l.merged(keyvals)...)
}

func (l *subsystemLogger) Panic(msg string, keyvals ...any) {
	l.base.Panic(msg, l.merged(keyvals)...)
}

func (l *subsystemLogger) Log(level pslog.Level, msg string, keyvals ...any) {
	l.base.Log(level, msg, l.merged(keyvals)...)
}

// With appends keyvals to this logger's fixed set, keeping the subsystem
// unchanged; narwhal never needs the subsystem itself reassigned mid-chain.
func (l *subsystemLogger) With(keyvals ...any) pslog.Logger {
	return &subsystemLogger{
		base:      ensureBase(l.base),
		subsystem: l.subsystem,
		keyvals:   append(cloneKeyvals(l.keyvals), keyvals...),
	}
}

func (l *subsystemLogger) WithLogLevel() pslog.Logger {
	return &subsystemLogger{
		base:      ensureBase(l.base).WithLogLevel(),
		subsystem: l.subsystem,
		keyvals:   cloneKeyvals(l.keyvals),
	}
}

func (l *subsystemLogger) LogLevel(level pslog.Level) pslog.Logger {
	return &subsystemLogger{
		base:      ensureBase(l.base).LogLevel(level),
		subsystem: l.subsystem,
		keyvals:   cloneKeyvals(l.keyvals),
	}
}

func (l *subsystemLogger) LogLevelFromEnv(key string) pslog.Logger {
	return &subsystemLogger{
		base:      ensureBase(l.base).LogLevelFromEnv(key),
		subsystem: l.subsystem,
		keyvals:   cloneKeyvals(l.keyvals),
	}
}

func (l *subsystemLogger) merged(extra []any) []any {
	total := 2 + len(l.keyvals) + len(extra)
	result := make([]any, 0, total)
	result = append(result, pslog.TrustedString("sys"), l.subsystem)
	if len(l.keyvals) > 0 {
		result = append(result, l.keyvals...)
	}
	if len(extra) > 0 {
		result = append(result, extra...)
	}
	return result
}
