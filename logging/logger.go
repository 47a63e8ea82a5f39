// Package logging is the leveled, structured logger shared by the planner packages and the
// gridplan command. Entries are built once and handed to every appender of the logger tree, so
// a file appender added to the root after subloggers were created still sees their entries.
package logging

import "context"

// Logger is what planner code logs through. The w variants take alternating keys and values.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// CDebugf and CDebugw log at debug level when either the logger or ctx is in debug mode.
	CDebugf(ctx context.Context, template string, args ...interface{})
	CDebugw(ctx context.Context, msg string, keysAndValues ...interface{})

	// Sublogger returns a child named "<name>.<subname>" that starts at this logger's level and
	// writes to the same appenders.
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	SetLevel(level Level)
	GetLevel() Level
	Sync() error
}

// NewLogger returns a logger writing Info+ entries to stdout in UTC.
func NewLogger(name string) Logger {
	l := newTree(name, INFO, true)
	l.AddAppender(NewStdoutAppender())
	return l
}

// NewBlankLogger returns a Debug+ logger in UTC with nowhere to write until appenders are added.
func NewBlankLogger(name string) Logger {
	return newTree(name, DEBUG, true)
}
