package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// timeFormat is used for the first column of every line.
const timeFormat = "2006-01-02T15:04:05.000Z0700"

// Appender receives every entry a logger emits. It is the write half of zapcore.Core, so a zap
// core such as the test observer can be added directly.
type Appender interface {
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

// ConsoleAppender writes one tab separated line per entry: time, level, logger name, caller,
// message and, when there are any, the fields as a json object.
type ConsoleAppender struct {
	io.Writer
}

// NewStdoutAppender writes to stdout.
func NewStdoutAppender() ConsoleAppender {
	return ConsoleAppender{os.Stdout}
}

// NewWriterAppender writes to w.
func NewWriterAppender(w io.Writer) ConsoleAppender {
	return ConsoleAppender{w}
}

// NewFileAppender writes to filename, rotating it once it grows past maxSizeMB megabytes and
// keeping at most maxBackups rotated files.
func NewFileAppender(filename string, maxSizeMB, maxBackups int) ConsoleAppender {
	return ConsoleAppender{&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}}
}

func (appender ConsoleAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line, err := formatLine(entry, fields)
	if _, werr := fmt.Fprintln(appender.Writer, line); werr != nil {
		return werr
	}
	return err
}

// Sync has nothing to flush; lines are written as they come.
func (appender ConsoleAppender) Sync() error {
	return nil
}

// Close closes the destination when it is closable, e.g. the file of a file appender.
func (appender ConsoleAppender) Close() error {
	if closer, ok := appender.Writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// formatLine renders an entry. When the fields cannot be encoded the line is still returned,
// without them, along with the error.
func formatLine(entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	columns := []string{entry.Time.Format(timeFormat), entry.Level.CapitalString()}
	if entry.LoggerName != "" {
		columns = append(columns, entry.LoggerName)
	}
	if entry.Caller.Defined {
		columns = append(columns, entry.Caller.TrimmedPath())
	}
	columns = append(columns, entry.Message)
	if len(fields) == 0 {
		return strings.Join(columns, "\t"), nil
	}

	// an empty entry leaves only the fields in the encoded object
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
	buf, err := enc.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return strings.Join(columns, "\t"), err
	}
	defer buf.Free()
	return strings.Join(append(columns, buf.String()), "\t"), nil
}
