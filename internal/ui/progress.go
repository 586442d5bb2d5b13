package ui

import (
	"fmt"
	"strings"
	"time"
)

// Spinner shows an animated spinner for indeterminate progress, such
// as waiting on a directory listing from a remote backend.
type Spinner struct {
	chars   []string
	index   int
	done    chan bool
	label   string
	ticker  *time.Ticker
	started bool
}

// NewSpinner creates a new spinner
func NewSpinner(label string) *Spinner {
	return &Spinner{
		chars: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		index: 0,
		done:  make(chan bool),
		label: label,
	}
}

// Start starts the spinner animation
func (s *Spinner) Start() {
	if !IsTerminal() {
		fmt.Printf("%s...\n", s.label)
		return
	}

	s.ticker = time.NewTicker(100 * time.Millisecond)
	s.started = true
	go func() {
		for {
			select {
			case <-s.done:
				return
			case <-s.ticker.C:
				fmt.Printf("\r%s %s", s.chars[s.index], s.label)
				s.index = (s.index + 1) % len(s.chars)
			}
		}
	}()
}

// Stop stops the spinner
func (s *Spinner) Stop() {
	if !s.started {
		return
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	s.done <- true
	fmt.Print("\r" + strings.Repeat(" ", len(s.label)+10) + "\r")
}
