// Package progress renders scan activity on stderr so it never mixes
// with report output on stdout.
package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Spinner is an indeterminate activity indicator for analysis runs, where
// the component count is unknown until parsing completes.
type Spinner struct {
	bar   *progressbar.ProgressBar
	label string
}

// NewSpinner creates a spinner that erases itself once finished.
func NewSpinner(label string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &Spinner{bar: bar, label: label}
}

// Tick advances the spinner. Safe for concurrent use; the parse workers
// call it once per file.
func (s *Spinner) Tick() {
	s.bar.Add(1)
}

// FinishSuccess erases the spinner without leaving output behind.
func (s *Spinner) FinishSuccess() {
	s.bar.Finish()
	s.bar.Clear()
}

// FinishError erases the spinner and reports the failure on stderr.
func (s *Spinner) FinishError(err error) {
	s.bar.Finish()
	s.bar.Clear()
	fmt.Fprintf(os.Stderr, "  %s error: %v\n", s.label, err)
}
