// Package logger builds the process logger and carries request-scoped
// loggers through a context.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

type ctxKeyLog struct{}

// NewWithOutput returns a JSON logrus logger writing to out. An unparsable
// level falls back to info.
func NewWithOutput(out io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	configure(l, out, level)
	return l
}

// Init configures the standard logger, which FromContext falls back to, and
// returns it.
func Init(level string) *logrus.Logger {
	l := logrus.StandardLogger()
	configure(l, os.Stdout, level)
	return l
}

func configure(l *logrus.Logger, out io.Writer, level string) {
	l.Out = out
	l.Formatter = &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.Level = lvl
	l.AddHook(TraceHook{})
}

// TraceHook stamps trace_id and span_id on entries logged with a context
// that carries a recording span.
type TraceHook struct{}

func (TraceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (TraceHook) Fire(e *logrus.Entry) error {
	if e.Context == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(e.Context)
	if sc.HasTraceID() {
		e.Data["trace_id"] = sc.TraceID().String()
	}
	if sc.HasSpanID() {
		e.Data["span_id"] = sc.SpanID().String()
	}
	return nil
}

// WithLogger stores a request-scoped logger in ctx.
func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKeyLog{}, log)
}

// FromContext returns the request-scoped logger, or the standard logger when
// none was attached. The returned entry is bound to ctx so the trace hook sees it.
func FromContext(ctx context.Context) logrus.FieldLogger {
	log, ok := ctx.Value(ctxKeyLog{}).(logrus.FieldLogger)
	if !ok {
		return logrus.StandardLogger().WithContext(ctx)
	}
	if entry, ok := log.(*logrus.Entry); ok {
		return entry.WithContext(ctx)
	}
	return log
}
