// Package logger provides named, colored loggers backed by logrus.
//
// Each line looks like:
//
//	2025-02-08T11:01:49Z [APP] [INFO] Router initialized
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrEmptyName = errors.New("logger name is empty")

// Logger writes leveled messages under a fixed prefix.
type Logger struct {
	entry *logrus.Entry
}

// prefixFormatter renders entries as "<time> [<prefix>] [<LEVEL>] <message> key=value...".
type prefixFormatter struct {
	prefix string
	color  string
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(e.Time.UTC().Format(time.RFC3339))
	b.WriteString(" ")
	if f.color != "" {
		b.WriteString(f.color)
	}
	fmt.Fprintf(&b, "[%s]", f.prefix)
	if f.color != "" {
		b.WriteString(colorReset)
	}
	fmt.Fprintf(&b, " [%s] %s", levelName(e.Level), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

const colorReset = "\033[0m"

func levelName(l logrus.Level) string {
	switch l {
	case logrus.WarnLevel:
		return "WARNING"
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "ERROR"
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG"
	}
	return "INFO"
}

// New creates a logger that writes to out with the given name as prefix.
// color is an ANSI escape sequence; pass "" for plain output.
func New(name, color string, out io.Writer) (*Logger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if out == nil {
		return nil, errors.New("logger output is nil")
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&prefixFormatter{prefix: name, color: color})
	l.SetLevel(logrus.InfoLevel)
	return &Logger{entry: logrus.NewEntry(l)}, nil
}

// SetLevel parses level (debug, info, warn, error) and applies it.
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

// With returns a logger that appends the given field to every message.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) Debug(msg string) {
	l.entry.Debug(msg)
}

func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

func (l *Logger) Warning(msg string) {
	l.entry.Warn(msg)
}

func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}
