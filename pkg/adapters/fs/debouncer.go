package fs

import (
	"sync"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

// debouncer coalesces bursts of events per path: only the last event of a
// burst is delivered, wait after the burst ends.
type debouncer struct {
	mu      sync.Mutex
	wait    time.Duration
	timers  map[string]*time.Timer
	pending map[string]core.FileEvent
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{
		wait:    wait,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.FileEvent),
	}
}

func (d *debouncer) add(e core.FileEvent, fn func(core.FileEvent)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending[e.Path] = e
	if t, ok := d.timers[e.Path]; ok && t.Stop() {
		t.Reset(d.wait)
		return
	}

	key := e.Path
	var t *time.Timer
	d.wg.Add(1)
	t = time.AfterFunc(d.wait, func() {
		defer d.wg.Done()

		d.mu.Lock()
		ev, ok := d.pending[key]
		delete(d.pending, key)
		if d.timers[key] == t {
			delete(d.timers, key)
		}
		stopped := d.stopped
		d.mu.Unlock()

		if ok && !stopped {
			fn(ev)
		}
	})
	d.timers[key] = t
}

// stopAndWait drops pending events and waits, up to timeout, for deliveries in flight.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	clear(d.pending)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
