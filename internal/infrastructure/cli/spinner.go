package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"∙∙∙", "●∙∙", "∙●∙", "∙∙●", "∙∙∙"}

// Spinner animates a progress indicator while a question is in flight.
type Spinner struct {
	writer  io.Writer
	message string

	mu      sync.Mutex
	done    chan struct{}
	stopped sync.WaitGroup
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{writer: w, message: "thinking"}
}

// Start begins the animation. Calling Start on a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})

	s.stopped.Add(1)
	go func(done chan struct{}) {
		defer s.stopped.Done()
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-done:
				// Erase the spinner line before handing the terminal back.
				fmt.Fprint(s.writer, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(s.writer, "\r%s %s", spinnerFrames[frame%len(spinnerFrames)], s.message)
				frame++
			}
		}
	}(s.done)
}

// Stop ends the animation and clears the line. Safe when never started.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return
	}
	close(s.done)
	s.stopped.Wait()
	s.done = nil
}
