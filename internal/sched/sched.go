package sched

import (
	"sync"
	"time"
)

// CancelFunc stops a pending timer. Calling it after the timer has fired,
// or more than once, is harmless.
type CancelFunc func()

// Scheduler abstracts deferred and repeated work so owners can tear down
// every timer they created. Callbacks scheduled on a closed scheduler never
// fire.
type Scheduler interface {
	// After runs fn once after d elapses.
	After(d time.Duration, fn func()) CancelFunc
	// Every runs fn repeatedly at interval d until cancelled.
	Every(d time.Duration, fn func()) CancelFunc
	// Close cancels all pending work. No callback fires after Close returns.
	Close()
}

// Real drives callbacks off wall-clock timers.
type Real struct {
	mu     sync.Mutex
	closed bool
	nextID uint64
	timers map[uint64]*time.Timer
	stops  map[uint64]chan struct{}
}

// NewReal constructs a scheduler backed by the runtime timer wheel.
func NewReal() *Real {
	return &Real{
		timers: make(map[uint64]*time.Timer),
		stops:  make(map[uint64]chan struct{}),
	}
}

// After runs fn once after d elapses.
func (s *Real) After(d time.Duration, fn func()) CancelFunc {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.nextID++
	id := s.nextID
	timer := time.AfterFunc(d, func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		if _, ok := s.timers[id]; !ok {
			s.mu.Unlock()
			return
		}
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
	s.timers[id] = timer
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if timer, ok := s.timers[id]; ok {
			timer.Stop()
			delete(s.timers, id)
		}
		s.mu.Unlock()
	}
}

// Every runs fn at a fixed interval until cancelled or the scheduler closes.
func (s *Real) Every(d time.Duration, fn func()) CancelFunc {
	if s == nil || fn == nil || d <= 0 {
		return func() {}
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.nextID++
	id := s.nextID
	stop := make(chan struct{})
	s.stops[id] = stop
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if _, ok := s.stops[id]; ok {
				delete(s.stops, id)
				close(stop)
			}
			s.mu.Unlock()
		})
	}
}

// Close stops every pending timer and interval. Idempotent.
func (s *Real) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	for id, stop := range s.stops {
		close(stop)
		delete(s.stops, id)
	}
	s.mu.Unlock()
}
