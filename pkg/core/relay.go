package core

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"slices"
	"sync"
)

// Listener receives session events from a Relay.
// Implementations must be comparable (typically pointers) so that
// subscribing twice can be detected; use ListenerFunc to wrap a function.
type Listener interface {
	OnEvent(e Event) error
}

type listenerFunc struct {
	fn func(Event) error
}

func (l *listenerFunc) OnEvent(e Event) error { return l.fn(e) }

// ListenerFunc adapts fn to a Listener. Each call returns a distinct listener.
func ListenerFunc(fn func(Event) error) Listener {
	return &listenerFunc{fn: fn}
}

func isComparable(l Listener) bool {
	return l != nil && reflect.TypeOf(l).Comparable()
}

// Relay is a synchronous one-to-many notification channel.
type Relay struct {
	mu        sync.Mutex
	listeners []Listener
	logger    *slog.Logger
}

// NewRelay creates a relay. A nil logger discards delivery failures.
func NewRelay(logger *slog.Logger) *Relay {
	return &Relay{logger: logger}
}

// Subscribe registers l. Subscribing the same listener twice has no effect.
// A nil or non-comparable listener is rejected with ErrValidation.
func (r *Relay) Subscribe(l Listener) error {
	if !isComparable(l) {
		return fmt.Errorf("%w: listener %T is not comparable", ErrValidation, l)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.listeners, l) {
		return nil
	}
	r.listeners = append(r.listeners, l)
	return nil
}

// Unsubscribe removes l. Removing an unknown listener has no effect.
func (r *Relay) Unsubscribe(l Listener) {
	if !isComparable(l) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = slices.DeleteFunc(r.listeners, func(x Listener) bool { return x == l })
}

// Len returns the number of subscribers.
func (r *Relay) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// Notify delivers e to every current subscriber in subscription order.
// Listeners subscribed during delivery do not receive e. A listener that
// fails or panics is logged and the remaining listeners still receive e.
func (r *Relay) Notify(e Event) {
	r.mu.Lock()
	snapshot := slices.Clone(r.listeners)
	r.mu.Unlock()

	for _, l := range snapshot {
		if err := r.deliver(l, e); err != nil && r.logger != nil {
			r.logger.Error("listener failed", "event", e.Type, "section", e.Section, "error", err)
		}
	}
}

func (r *Relay) deliver(l Listener, e Event) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("listener panic: %v", recovered)
			if r.logger != nil && r.logger.Enabled(context.Background(), slog.LevelDebug) {
				r.logger.Debug("listener panic stack", "stack", string(debug.Stack()))
			}
		}
	}()
	return l.OnEvent(e)
}
