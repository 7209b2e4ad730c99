package renderer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/df07/go-smallpt/pkg/core"
)

// DefaultLogger implements core.Logger by writing to an io.Writer
type DefaultLogger struct {
	w io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.w, format, args...)
}

// NewDefaultLogger creates a logger writing to stdout
func NewDefaultLogger() core.Logger {
	return NewWriterLogger(os.Stdout)
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{w: w}
}

// NopLogger discards all output
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}

// SlogLogger forwards each formatted line to a structured logger at info level
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger adapts l to core.Logger. A nil l discards all output.
func NewSlogLogger(l *slog.Logger) core.Logger {
	if l == nil {
		return NopLogger{}
	}
	return &SlogLogger{logger: l}
}

func (sl *SlogLogger) Printf(format string, args ...interface{}) {
	sl.logger.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
