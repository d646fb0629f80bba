package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 100 * time.Millisecond

// spinnerFrames walk a card around the ring.
var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// spinner shows progress for a blocking step such as an SVG render or a
// Redis dial. It stops on Stop or when its context ends.
type spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	started time.Time
	width   int

	startOnce sync.Once
	stopOnce  sync.Once
	stopped   chan struct{}
}

// newSpinner creates a spinner writing to stderr.
func newSpinner(ctx context.Context, message string) *spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:       w,
		message: message,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Calls after the first are ignored.
func (s *spinner) Start() {
	s.startOnce.Do(func() {
		s.started = time.Now()
		go s.run()
	})
}

func (s *spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s.draw(spinnerFrames[i%len(spinnerFrames)])
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
		}
	}
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	if elapsed := time.Since(s.started); elapsed >= time.Second {
		line += " " + StyleDim.Render(fmt.Sprintf("%.1fs", elapsed.Seconds()))
	}
	s.width = max(s.width, lipgloss.Width(line))
	fmt.Fprintf(s.w, "\r%s", line)
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Stop ends the animation and clears its line. It is safe to call more
// than once, and before Start.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		// Never started: nothing to wait for.
		s.startOnce.Do(func() { close(s.stopped) })
		<-s.stopped
	})
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context has ended, either through
// Stop or through its parent.
func (s *spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
