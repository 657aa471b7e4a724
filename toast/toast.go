// Package toast is the timed, de-duplicating notification queue driven by
// cart and wishlist mutations.
package toast

import (
	"sync"
	"time"
)

// DefaultDuration matches the storefront's standard toast lifetime.
const DefaultDuration = 3 * time.Second

// Toast is one active notification.
type Toast struct {
	ID       int64         `json:"id"`
	Message  string        `json:"message"`
	Kind     string        `json:"kind"` // "success", "info", "error"
	Duration time.Duration `json:"-"`
}

// Queue holds active toasts. Each toast self-expires after its duration;
// dismissing early cancels the pending timer so no callback fires against
// already-removed state.
type Queue struct {
	mu     sync.Mutex
	nextID int64
	toasts []Toast
	timers map[int64]*time.Timer
}

func New() *Queue {
	return &Queue{timers: make(map[int64]*time.Timer)}
}

// Push enqueues a notification unless an identical (message, kind) pair is
// already active; duplicates report ok=false. Duration <= 0 falls back to
// DefaultDuration.
func (q *Queue) Push(message, kind string, duration time.Duration) (int64, bool) {
	if duration <= 0 {
		duration = DefaultDuration
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.toasts {
		if q.toasts[i].Message == message && q.toasts[i].Kind == kind {
			return 0, false
		}
	}
	q.nextID++
	id := q.nextID
	q.toasts = append(q.toasts, Toast{ID: id, Message: message, Kind: kind, Duration: duration})
	q.timers[id] = time.AfterFunc(duration, func() {
		q.Dismiss(id)
	})
	return id, true
}

// Dismiss removes a toast and cancels its expiry timer. Unknown ids are a
// no-op (the timer may already have fired).
func (q *Queue) Dismiss(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i := range q.toasts {
		if q.toasts[i].ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}

// Active returns a copy of the currently visible toasts in enqueue order.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Stop cancels all pending timers and clears the queue. Teardown for tests
// and session eviction.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
}
