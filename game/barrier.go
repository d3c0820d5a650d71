package game

import (
	"context"
	"sync"
)

// PauseGate is a broadcast gate the workers pass before every step.
//
// While the gate is open its channel is closed, so Wait returns at once. Pause
// swaps in a fresh channel; Resume closes it, releasing every waiter together.
// Wait reads the channel under the mutex, so a waiter that races with Resume
// holds either the already-closed channel or the one Resume is about to close.
type PauseGate struct {
	mu     sync.Mutex
	ch     chan struct{}
	isOpen bool
}

// NewPauseGate returns an open gate.
func NewPauseGate() *PauseGate {
	ch := make(chan struct{})
	close(ch)
	return &PauseGate{ch: ch, isOpen: true}
}

// Pause closes the gate. Callers arriving at Wait block until Resume.
func (g *PauseGate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.isOpen {
		g.ch = make(chan struct{})
		g.isOpen = false
	}
}

// Resume opens the gate and releases all blocked waiters.
func (g *PauseGate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.isOpen {
		close(g.ch)
		g.isOpen = true
	}
}

// IsOpen reports whether Wait would return immediately.
func (g *PauseGate) IsOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isOpen
}

// Wait blocks while the gate is closed. It returns ctx.Err() if ctx is done first.
func (g *PauseGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	ch := g.ch
	g.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
