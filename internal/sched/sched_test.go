package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualAfterFiresInOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var order []string
	m.After(3*time.Second, func() { order = append(order, "late") })
	m.After(1*time.Second, func() { order = append(order, "early") })
	m.After(2*time.Second, func() { order = append(order, "middle") })

	m.Advance(5 * time.Second)

	require.Equal(t, []string{"early", "middle", "late"}, order)
	assert.Empty(t, m.Pending())
	assert.Equal(t, time.Unix(5, 0), m.Now())
}

func TestManualCancelPreventsFire(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	fired := false
	cancel := m.After(time.Second, func() { fired = true })
	cancel()
	m.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestManualEveryRepeats(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	count := 0
	cancel := m.Every(100*time.Millisecond, func() { count++ })

	m.Advance(time.Second)
	assert.Equal(t, 10, count)

	cancel()
	m.Advance(time.Second)
	assert.Equal(t, 10, count)
}

func TestManualCallbackMaySchedule(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	chained := false
	m.After(time.Second, func() {
		m.After(time.Second, func() { chained = true })
	})

	m.Advance(3 * time.Second)
	assert.True(t, chained)
}

func TestManualCloseDropsPending(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	fired := false
	m.After(time.Second, func() { fired = true })
	m.Close()
	m.Advance(5 * time.Second)
	assert.False(t, fired)
}

func TestRealCancelAndClose(t *testing.T) {
	s := NewReal()
	fired := make(chan struct{}, 1)
	cancel := s.After(time.Hour, func() { fired <- struct{}{} })
	cancel()
	cancel() // double cancel is harmless

	stop := s.Every(time.Hour, func() { fired <- struct{}{} })
	stop()

	s.Close()
	s.Close() // idempotent

	// Scheduling after close is a no-op.
	s.After(time.Nanosecond, func() { fired <- struct{}{} })
	select {
	case <-fired:
		t.Fatal("callback fired after close")
	case <-time.After(50 * time.Millisecond):
	}
}
