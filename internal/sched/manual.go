package sched

import (
	"sort"
	"sync"
	"time"
)

type manualEntry struct {
	id       uint64
	deadline time.Time
	interval time.Duration // zero for one-shot
	fn       func()
}

// Manual is a deterministic scheduler for tests. Time only moves when
// Advance is called; due callbacks run synchronously in deadline order.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	closed  bool
	nextID  uint64
	entries map[uint64]*manualEntry
}

// NewManual constructs a manual scheduler anchored at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:     start,
		entries: make(map[uint64]*manualEntry),
	}
}

// Now reports the manual clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// After registers fn to run once the clock advances past d.
func (m *Manual) After(d time.Duration, fn func()) CancelFunc {
	return m.add(d, 0, fn)
}

// Every registers fn to run at every interval boundary the clock crosses.
func (m *Manual) Every(d time.Duration, fn func()) CancelFunc {
	if d <= 0 {
		return func() {}
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, interval time.Duration, fn func()) CancelFunc {
	if m == nil || fn == nil {
		return func() {}
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return func() {}
	}
	m.nextID++
	id := m.nextID
	m.entries[id] = &manualEntry{id: id, deadline: m.now.Add(d), interval: interval, fn: fn}
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
	}
}

// Advance moves the clock forward by d, firing due callbacks in order.
// Callbacks run without the internal lock held, so they may schedule or
// cancel further work.
func (m *Manual) Advance(d time.Duration) {
	if m == nil || d < 0 {
		return
	}
	target := func() time.Time {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.now.Add(d)
	}()

	for {
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return
		}
		var next *manualEntry
		for _, e := range m.entries {
			if e.deadline.After(target) {
				continue
			}
			if next == nil || e.deadline.Before(next.deadline) || (e.deadline.Equal(next.deadline) && e.id < next.id) {
				next = e
			}
		}
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.deadline
		if next.interval > 0 {
			next.deadline = next.deadline.Add(next.interval)
		} else {
			delete(m.entries, next.id)
		}
		fn := next.fn
		m.mu.Unlock()
		fn()
	}
}

// Pending reports the deadlines of all scheduled work, soonest first.
func (m *Manual) Pending() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Time, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.deadline)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Close drops all pending work. No callback fires afterwards.
func (m *Manual) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.closed = true
	m.entries = make(map[uint64]*manualEntry)
	m.mu.Unlock()
}

var _ Scheduler = (*Manual)(nil)
var _ Scheduler = (*Real)(nil)
