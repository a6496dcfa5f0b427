package render

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var brailleFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a one-line progress message on w until stopped.
type Spinner struct {
	w        io.Writer
	interval time.Duration

	mu      sync.Mutex
	message string
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewSpinner creates a stopped spinner.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w, interval: 80 * time.Millisecond}
}

// Start begins animating message. Calling Start on a running spinner only
// changes the message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.loop(s.done)
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()
	if done == nil {
		return
	}
	close(done)
	s.wg.Wait()
}

func (s *Spinner) loop(done chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	width := 0
	for i := 0; ; i++ {
		s.mu.Lock()
		line := brailleFrames[i%len(brailleFrames)] + " " + s.message
		s.mu.Unlock()
		fmt.Fprintf(s.w, "\r%s", line)
		width = max(width, StringWidth(line))

		select {
		case <-done:
			fmt.Fprintf(s.w, "\r%*s\r", width, "")
			return
		case <-ticker.C:
		}
	}
}
