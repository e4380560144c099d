package presenter

import (
	"sync"
	"time"
)

// Dispatcher queues work posted from background goroutines (loader, config
// watcher) and runs it on the UI thread when Tick is called. The Schedule
// callback re-arms the next tick. The zero value is usable.
type Dispatcher struct {
	mu       sync.Mutex
	pending  []func()
	Schedule func()
}

// NewDispatcher returns a dispatcher that calls schedule after every Tick.
func NewDispatcher(schedule func()) *Dispatcher {
	return &Dispatcher{Schedule: schedule}
}

// Post queues fn for the next Tick. Safe for concurrent use.
func (d *Dispatcher) Post(fn func()) {
	if d == nil || fn == nil {
		return
	}
	d.mu.Lock()
	d.pending = append(d.pending, fn)
	d.mu.Unlock()
}

// Pending reports the number of queued callbacks.
func (d *Dispatcher) Pending() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Tick runs queued callbacks in posting order, then re-arms.
func (d *Dispatcher) Tick() {
	if d == nil {
		return
	}
	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	if d.Schedule != nil {
		d.Schedule()
	}
}

// DefaultTick is the UI polling interval used by the app.
const DefaultTick = 50 * time.Millisecond
