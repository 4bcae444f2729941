package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wallfeed/pkg/config"
)

// newLogger creates a logger writing to w at level.
// Text output uses "HH:MM:SS.ms" timestamps (e.g., "14:32:01.45"); the json
// format emits one object per line for log collectors.
func newLogger(w io.Writer, level log.Level, format string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	if format == config.FormatJSON {
		l.SetFormatter(log.JSONFormatter)
		l.SetTimeFormat(time.RFC3339)
	}
	return l
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Fetched 8 wallpapers (412ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// withLogger attaches l to ctx. The pipeline runner picks it up from there,
// so command logs and runner logs share one logger.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return log.WithContext(ctx, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}
