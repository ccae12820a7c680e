package main

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// progressDisplay renders scan progress: a spinner line on a TTY, periodic
// PROGRESS lines otherwise. It is also the writer for diagnostics echoed to
// stderr, so the spinner line is cleared before any other output.
type progressDisplay struct {
	mu       sync.Mutex
	out      io.Writer
	isTTY    bool
	started  time.Time
	interval time.Duration
	spinning bool // a spinner line is on screen

	discovered  atomic.Int64
	extracted   atomic.Int64
	diagnostics atomic.Int64
	stage       atomic.Value

	done chan struct{}
	wg   sync.WaitGroup
}

func newProgressDisplay(out io.Writer, isTTY bool, started time.Time, interval time.Duration) *progressDisplay {
	p := &progressDisplay{
		out:      out,
		isTTY:    isTTY,
		started:  started,
		interval: interval,
		done:     make(chan struct{}),
	}
	p.stage.Store("walk")
	return p
}

// Write clears the spinner line, if any, and writes b.
func (p *progressDisplay) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearLocked()
	return p.out.Write(b)
}

func (p *progressDisplay) clearLocked() {
	if p.spinning {
		fmt.Fprint(p.out, "\r\033[K")
		p.spinning = false
	}
}

func (p *progressDisplay) update(discovered, extracted, diagnostics int64) {
	p.discovered.Store(discovered)
	p.extracted.Store(extracted)
	p.diagnostics.Store(diagnostics)
}

func (p *progressDisplay) setStage(stage string) {
	if stage != "" {
		p.stage.Store(stage)
	}
}

func (p *progressDisplay) spin(frame int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\r\033[K%s %s", spinnerFrames[frame%len(spinnerFrames)], p.line())
	p.spinning = true
}

func (p *progressDisplay) start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		lastLine := time.Now()
		frame := 0
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				if p.isTTY {
					p.spin(frame)
					frame++
				} else if p.interval > 0 && time.Since(lastLine) >= p.interval {
					fmt.Fprintf(p, "PROGRESS %s\n", p.line())
					lastLine = time.Now()
				}
			}
		}
	}()
}

func (p *progressDisplay) stop() {
	close(p.done)
	p.wg.Wait()
	p.mu.Lock()
	p.clearLocked()
	p.mu.Unlock()
}

func (p *progressDisplay) line() string {
	stage, _ := p.stage.Load().(string)
	elapsed := time.Since(p.started).Round(time.Second)
	line := fmt.Sprintf("stage=%s discovered=%d extracted=%d elapsed=%s",
		stage, p.discovered.Load(), p.extracted.Load(), elapsed)
	if n := p.diagnostics.Load(); n > 0 {
		line += fmt.Sprintf(" diagnostics=%d", n)
	}
	return line
}
