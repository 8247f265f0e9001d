// Package progress reports long-running CLI work such as dataset imports.
package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
)

// Reporter receives progress updates.
type Reporter interface {
	Start(total int, label string)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a LogReporter when CI is set, otherwise a
// TerminalReporter drawing on stderr.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LogReporter{}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// TerminalReporter displays a progress bar.
type TerminalReporter struct {
	Out io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int, label string) {
	out := r.Out
	if out == nil {
		out = os.Stderr
	}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		if message != "" {
			r.bar.Describe(message)
		}
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LogReporter writes structured log lines, suitable for CI logs. Every
// limits output to every Nth update; zero logs them all.
type LogReporter struct {
	Every int
	total int
	label string
}

func (r *LogReporter) Start(total int, label string) {
	r.total, r.label = total, label
	logging.Info().Str("task", label).Int("total", total).Msg("started")
}

func (r *LogReporter) Update(current int, message string) {
	if r.Every > 1 && current%r.Every != 0 && current != r.total {
		return
	}
	logging.Info().Str("task", r.label).Int("current", current).Int("total", r.total).Msg(message)
}

func (r *LogReporter) Finish() {
	logging.Info().Str("task", r.label).Msg("complete")
}

// Nop discards all updates.
type Nop struct{}

func (Nop) Start(int, string)  {}
func (Nop) Update(int, string) {}
func (Nop) Finish()            {}
