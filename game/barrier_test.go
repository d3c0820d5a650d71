package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPauseGateOpenByDefault(t *testing.T) {
	g := NewPauseGate()
	if !g.IsOpen() {
		t.Fatal("new gate is closed")
	}
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait on open gate: %v", err)
	}
}

func TestPauseGateReleasesAllWaiters(t *testing.T) {
	g := NewPauseGate()
	g.Pause()

	const waiters = 8
	var released sync.WaitGroup
	var started sync.WaitGroup
	done := make(chan struct{}, waiters)
	for i := 0; i < waiters; i++ {
		started.Add(1)
		released.Add(1)
		go func() {
			defer released.Done()
			started.Done()
			if err := g.Wait(context.Background()); err == nil {
				done <- struct{}{}
			}
		}()
	}
	started.Wait()

	select {
	case <-done:
		t.Fatal("waiter passed a closed gate")
	case <-time.After(20 * time.Millisecond):
	}

	g.Resume()

	finished := make(chan struct{})
	go func() {
		released.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("waiters still blocked after Resume")
	}
	if len(done) != waiters {
		t.Errorf("released %d waiters, want %d", len(done), waiters)
	}
}

// TestPauseGateNoLostWakeup races Wait against Resume many times.
func TestPauseGateNoLostWakeup(t *testing.T) {
	g := NewPauseGate()
	for i := 0; i < 1000; i++ {
		g.Pause()
		done := make(chan error, 1)
		go func() { done <- g.Wait(context.Background()) }()
		g.Resume()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("iteration %d: Wait: %v", i, err)
			}
		case <-time.After(time.Second):
			t.Fatalf("iteration %d: waiter missed Resume", i)
		}
	}
}

func TestPauseGateWaitContext(t *testing.T) {
	g := NewPauseGate()
	g.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Wait(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Wait = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait ignored cancellation")
	}
	if g.IsOpen() {
		t.Error("cancelled Wait opened the gate")
	}
}

func TestPauseGateIdempotent(t *testing.T) {
	g := NewPauseGate()
	g.Resume()
	g.Pause()
	g.Pause()
	if g.IsOpen() {
		t.Fatal("gate open after Pause")
	}
	g.Resume()
	g.Resume()
	if !g.IsOpen() {
		t.Fatal("gate closed after Resume")
	}
}
