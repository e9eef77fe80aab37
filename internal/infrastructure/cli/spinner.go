package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Spinner displays an animated spinner while waiting on the endpoint.
// It stays silent unless w is a terminal.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a new spinner writing to w.
func NewSpinner(w io.Writer) *Spinner {
	if !isTerminal(w) {
		return &Spinner{}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " thinking..."
	return &Spinner{s: s}
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	if s.s == nil {
		return
	}
	s.s.Start()
}

// Stop stops the spinner animation; calling it twice is harmless.
func (s *Spinner) Stop() {
	if s.s == nil {
		return
	}
	s.s.Stop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
