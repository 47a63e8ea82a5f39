package logging

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sinks is the appender list shared by a root logger and all of its subloggers.
type sinks struct {
	mu        sync.RWMutex
	appenders []Appender
}

func (s *sinks) add(appender Appender) {
	s.mu.Lock()
	s.appenders = append(s.appenders, appender)
	s.mu.Unlock()
}

func (s *sinks) write(entry zapcore.Entry, fields []zapcore.Field) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, appender := range s.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func (s *sinks) sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var err error
	for _, appender := range s.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

type treeLogger struct {
	name  string
	level *atomic.Int32
	utc   bool
	sinks *sinks
}

func newTree(name string, level Level, utc bool) *treeLogger {
	return &treeLogger{name: name, level: atomic.NewInt32(int32(level)), utc: utc, sinks: &sinks{}}
}

func (l *treeLogger) Sublogger(subname string) Logger {
	name := subname
	if l.name != "" {
		name = l.name + "." + subname
	}
	return &treeLogger{name: name, level: atomic.NewInt32(l.level.Load()), utc: l.utc, sinks: l.sinks}
}

func (l *treeLogger) AddAppender(appender Appender) { l.sinks.add(appender) }
func (l *treeLogger) SetLevel(level Level)          { l.level.Store(int32(level)) }
func (l *treeLogger) GetLevel() Level               { return Level(l.level.Load()) }
func (l *treeLogger) Sync() error                   { return l.sinks.sync() }

func (l *treeLogger) enabled(level Level) bool {
	return level >= l.GetLevel()
}

// emit must be called directly from the exported logging method so that the caller two frames
// up is the code that logged.
func (l *treeLogger) emit(level Level, msg string, fields []zapcore.Field) {
	now := time.Now()
	if l.utc {
		now = now.UTC()
	}
	l.sinks.write(zapcore.Entry{
		Level:      level.AsZap(),
		Time:       now,
		LoggerName: l.name,
		Message:    msg,
		Caller:     zapcore.NewEntryCaller(runtime.Caller(2)),
	}, fields)
}

// pairFields turns alternating keys and values into fields. A trailing key without a value is
// kept and flagged.
func pairFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.String(key, "unpaired log key"))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func (l *treeLogger) Debug(args ...interface{}) {
	if l.enabled(DEBUG) {
		l.emit(DEBUG, fmt.Sprint(args...), nil)
	}
}

func (l *treeLogger) Debugf(template string, args ...interface{}) {
	if l.enabled(DEBUG) {
		l.emit(DEBUG, fmt.Sprintf(template, args...), nil)
	}
}

func (l *treeLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if l.enabled(DEBUG) {
		l.emit(DEBUG, msg, pairFields(keysAndValues))
	}
}

func (l *treeLogger) CDebugf(ctx context.Context, template string, args ...interface{}) {
	if l.enabled(DEBUG) || IsDebugMode(ctx) {
		l.emit(DEBUG, fmt.Sprintf(template, args...), nil)
	}
}

func (l *treeLogger) CDebugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	if l.enabled(DEBUG) || IsDebugMode(ctx) {
		l.emit(DEBUG, msg, pairFields(keysAndValues))
	}
}

func (l *treeLogger) Info(args ...interface{}) {
	if l.enabled(INFO) {
		l.emit(INFO, fmt.Sprint(args...), nil)
	}
}

func (l *treeLogger) Infof(template string, args ...interface{}) {
	if l.enabled(INFO) {
		l.emit(INFO, fmt.Sprintf(template, args...), nil)
	}
}

func (l *treeLogger) Infow(msg string, keysAndValues ...interface{}) {
	if l.enabled(INFO) {
		l.emit(INFO, msg, pairFields(keysAndValues))
	}
}

func (l *treeLogger) Warn(args ...interface{}) {
	if l.enabled(WARN) {
		l.emit(WARN, fmt.Sprint(args...), nil)
	}
}

func (l *treeLogger) Warnf(template string, args ...interface{}) {
	if l.enabled(WARN) {
		l.emit(WARN, fmt.Sprintf(template, args...), nil)
	}
}

func (l *treeLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if l.enabled(WARN) {
		l.emit(WARN, msg, pairFields(keysAndValues))
	}
}

func (l *treeLogger) Error(args ...interface{}) {
	if l.enabled(ERROR) {
		l.emit(ERROR, fmt.Sprint(args...), nil)
	}
}

func (l *treeLogger) Errorf(template string, args ...interface{}) {
	if l.enabled(ERROR) {
		l.emit(ERROR, fmt.Sprintf(template, args...), nil)
	}
}

func (l *treeLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if l.enabled(ERROR) {
		l.emit(ERROR, msg, pairFields(keysAndValues))
	}
}

var _ Logger = (*treeLogger)(nil)
