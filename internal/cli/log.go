package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat keeps hundredths of a second, enough to tell pipeline
// stages apart.
const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(logTimeFormat)
	l.SetLevel(level)
	return l
}

// progress times one CLI step and reports it as a structured log line,
// e.g. `INFO Loaded 42 types took=1ms`.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Info(msg, "took", time.Since(p.start).Round(time.Millisecond))
}
