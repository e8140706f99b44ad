package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
	fail    map[string]bool
	done    chan string
}

func newRecordingRemover() *recordingRemover {
	return &recordingRemover{fail: map[string]bool{}, done: make(chan string, 64)}
}

func (r *recordingRemover) Remove(_ context.Context, name string) error {
	defer func() { r.done <- name }()
	if r.fail[name] {
		return errors.New("permission denied")
	}
	r.mu.Lock()
	r.removed = append(r.removed, name)
	r.mu.Unlock()
	return nil
}

func waitFor(t *testing.T, ch <-chan string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d removals", i, n)
		}
	}
}

func TestDispatcher_RemovesEnqueuedImages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remover := newRecordingRemover()
	remover.fail["broken.png"] = true
	d := NewDispatcher(3, remover, zerolog.Nop())
	d.Start(ctx)

	names := []string{"a.png", "b.png", "broken.png", "c.png"}
	for _, n := range names {
		d.Enqueue(n)
	}
	waitFor(t, remover.done, len(names))

	remover.mu.Lock()
	defer remover.mu.Unlock()
	if len(remover.removed) != 3 {
		t.Fatalf("expected 3 successful removals, got %v", remover.removed)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(5, newRecordingRemover(), zerolog.Nop())
	for _, name := range []string{"x.png", "y.jpg", "a-much-longer-name.webp"} {
		first := d.shardIndex(name)
		if first < 0 || first >= 5 {
			t.Fatalf("index %d out of range", first)
		}
		if again := d.shardIndex(name); again != first {
			t.Fatalf("shard for %s moved from %d to %d", name, first, again)
		}
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// Workers are not started, so the buffer fills up.
	d := NewDispatcher(1, newRecordingRemover(), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue("same.png")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, newRecordingRemover(), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
