// Package logging configures logrus for the CLI and the interactive chart.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

// Formatter writes entries as "[time] LEVEL [file:line] message key=value".
type Formatter struct {
	TimestampFormat string
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	layout := f.TimestampFormat
	if layout == "" {
		layout = timestampFormat
	}
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}
	fmt.Fprintf(b, "[%s] %s", entry.Time.Format(layout), strings.ToUpper(entry.Level.String()))
	if entry.HasCaller() {
		fmt.Fprintf(b, " [%s]", prettyCaller(entry.Caller))
	}
	b.WriteString(" ")
	b.WriteString(entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func prettyCaller(frame *runtime.Frame) string {
	_, fileName := filepath.Split(frame.File)
	return fmt.Sprintf("%s:%d", fileName, frame.Line)
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// New returns a logger writing to out at level. An empty level means info.
func New(out io.Writer, level string) (*logrus.Logger, error) {
	lvl := logrus.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&Formatter{})
	logger.SetReportCaller(lvl >= logrus.DebugLevel)
	return logger, nil
}

// Setup returns a logger appending to file, or writing to fallback when
// file is empty. The closer releases the file.
func Setup(level, file string, fallback io.Writer) (*logrus.Logger, func() error, error) {
	out := fallback
	closer := func() error { return nil }
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f.Close
	}
	if out == nil {
		out = io.Discard
	}
	logger, err := New(out, level)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return logger, closer, nil
}
