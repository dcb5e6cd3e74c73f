// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressBar implements a progress bar that renders in its own
// GoRoutine so that it runs concurrently with all other processes. The
// display GoRoutine owns the progress counter; Increment and Close may
// be called from any GoRoutine.
type ProgressBar struct {
	// Width determines the number of characters wide that the progress
	// bar should be
	width float64

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%.
	maxProgress float64

	// incrementEvent is an event channel. When an event appears on this
	// channel, the display GoRoutine increments its progress counter.
	incrementEvent chan struct{}

	closeEvent chan struct{}

	mu     sync.Mutex
	closed bool

	updateEvery       time.Duration
	updateAtIncrement bool
}

// New returns a new progress bar that is width characters wide and
// reaches 100% capacity after max Increment() calls.
func New(width, max int, updateEvery time.Duration,
	updateAtIncrement bool) *ProgressBar {
	return &ProgressBar{
		width:             float64(width),
		maxProgress:       float64(max),
		incrementEvent:    make(chan struct{}, 128),
		closeEvent:        make(chan struct{}),
		updateEvery:       updateEvery,
		updateAtIncrement: updateAtIncrement,
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called. Increment returns
// without effect once the progress bar is closed.
func (p *ProgressBar) Increment() {
	select {
	case p.incrementEvent <- struct{}{}:
	case <-p.closeEvent:
	}
}

// Close closes the progress bar so that it will no longer display to
// the screen. This function also cleans up any resources the progress
// bar is using.
func (pbar *ProgressBar) Close() {
	pbar.mu.Lock()
	defer pbar.mu.Unlock()

	if pbar.closed {
		panic("close: close on closed progress bar")
	}
	pbar.closed = true
	close(pbar.closeEvent)
	fmt.Println() // Jump to next line after printed pbar
}

// Display displays the progress bar on the screen. It should only be
// called once.
func (pbar *ProgressBar) Display() {
	go func() {
		currentProgress := 0.0
		maxProgress := pbar.maxProgress
		width := pbar.width

		updateEvery := pbar.updateEvery
		tick := time.NewTicker(updateEvery)
		updateAtIncrement := pbar.updateAtIncrement

		var elapsedTime time.Duration = 0 * time.Second

		var bar strings.Builder

		for {
			// Update either whenever Increment() is called or on every
			// tick otherwise.
			select {
			case <-pbar.incrementEvent:
				if currentProgress < maxProgress {
					currentProgress++
				}
				if !updateAtIncrement {
					continue
				}

			case <-tick.C:
				elapsedTime += updateEvery

			case <-pbar.closeEvent:
				tick.Stop()
				return
			}

			bar.Reset()
			bar.Write([]byte("|"))

			currentProg := currentProgress / maxProgress * width
			for i := 0.0; i < currentProg; i++ {
				bar.Write([]byte("█"))
			}
			for i := currentProg; i < width; i++ {
				bar.Write([]byte(" "))
			}
			bar.Write([]byte(fmt.Sprintf("| [%.2f%v | elapsed: %v]",
				currentProgress/maxProgress*100, "%",
				elapsedTime)))

			fmt.Printf("\n\033[1A\033[K%v", bar.String())
		}
	}()
}
