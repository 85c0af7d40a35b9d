// Package cli implements the truchet command-line interface.
//
// The CLI generates Truchet triangle patterns, prints the parameters a seed
// resolves to, serves patterns over HTTP and manages the local cache. It is
// built on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - generate: Write a pattern as SVG, PNG, PDF or JSON
//   - params: Print the resolved generation parameters
//   - serve: Expose the pipeline over HTTP
//   - cache: Clear or locate the scene and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline, cache and HTTP events. The serve command attaches a
// request-scoped logger to each request context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. At debug level it also reports the
// caller of each log line.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    level <= log.DebugLevel,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs the wall time of a command once its work is done.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time, e.g.
//
//	INFO wrote pattern seed=7 files=2 elapsed=312ms
func (s *stopwatch) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}

type requestLoggerKey struct{}

// withRequestLogger attaches a logger tagged with the request ID to ctx.
func withRequestLogger(ctx context.Context, l *log.Logger, id string) context.Context {
	return context.WithValue(ctx, requestLoggerKey{}, l.With("request_id", id))
}

// requestLogger returns the logger attached by withRequestLogger, or
// log.Default outside a request.
func requestLogger(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(requestLoggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
