package fs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/notes/pkg/core"
)

func TestDebouncer(t *testing.T) {
	t.Run("Coalesces Bursts Per Path", func(t *testing.T) {
		d := newDebouncer(20 * time.Millisecond)
		var mu sync.Mutex
		var got []core.FileEvent
		record := func(e core.FileEvent) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, e)
		}

		d.add(core.FileEvent{Type: core.FileModified, Path: "a"}, record)
		d.add(core.FileEvent{Type: core.FileModified, Path: "b"}, record)
		d.add(core.FileEvent{Type: core.FileRemoved, Path: "a"}, record)

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(got) == 2
		}, time.Second, 5*time.Millisecond)

		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		assert.Len(t, got, 2)
		for _, e := range got {
			if e.Path == "a" {
				assert.Equal(t, core.FileRemoved, e.Type, "last event of the burst wins")
			}
		}
	})

	t.Run("Stop Drops Pending", func(t *testing.T) {
		d := newDebouncer(time.Hour)
		called := false
		d.add(core.FileEvent{Path: "a"}, func(core.FileEvent) { called = true })

		done := make(chan struct{})
		go func() {
			d.stopAndWait(time.Second)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("stopAndWait did not return")
		}
		assert.False(t, called)

		d.add(core.FileEvent{Path: "b"}, func(core.FileEvent) { called = true })
		assert.Empty(t, d.timers)
	})
}
