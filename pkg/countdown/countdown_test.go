package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemainingBreakdown(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	// 1 day + 1 hour + 1 minute + 1 second
	target := now.Add(90061 * time.Second)
	snap := Remaining(target, now)

	assert.Equal(t, 1, snap.Days)
	assert.Equal(t, 1, snap.Hours)
	assert.Equal(t, 1, snap.Minutes)
	assert.Equal(t, 1, snap.Seconds)
	assert.False(t, snap.IsPast)
}

func TestRemainingExactTarget(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	snap := Remaining(now, now)

	assert.Equal(t, 0, snap.Days)
	assert.Equal(t, 0, snap.Hours)
	assert.Equal(t, 0, snap.Minutes)
	assert.Equal(t, 0, snap.Seconds)
}

func TestRemainingPastDate(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	target := now.Add(-2 * time.Hour)
	snap := Remaining(target, now)

	assert.True(t, snap.IsPast)
	// Magnitude of the elapsed time, never negative components.
	assert.Equal(t, 2, snap.Hours)
	assert.Equal(t, 0, snap.Days)
}

func TestRemainingSubSecondTruncates(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	target := now.Add(1500 * time.Millisecond)
	snap := Remaining(target, now)

	assert.Equal(t, 1, snap.Seconds)
}

func TestEngineEmitsImmediately(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	e := newEngine(now.Add(time.Hour), func() time.Time { return now })
	defer e.Stop()

	select {
	case snap := <-e.C():
		assert.Equal(t, 1, snap.Hours)
		assert.False(t, snap.IsPast)
	case <-time.After(time.Second):
		t.Fatal("no immediate snapshot")
	}
}

func TestEngineTerminalSnapshotClosesChannel(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	// Target already reached: the first emit is terminal.
	e := newEngine(now, func() time.Time { return now })

	snap, ok := <-e.C()
	assert.True(t, ok)
	assert.Equal(t, 0, snap.Days+snap.Hours+snap.Minutes+snap.Seconds)

	select {
	case _, ok := <-e.C():
		assert.False(t, ok, "channel should be closed after the terminal snapshot")
	case <-time.After(2 * time.Second):
		t.Fatal("channel never closed")
	}
}

func TestEngineStopClosesChannel(t *testing.T) {
	e := NewEngine(time.Now().Add(time.Hour))

	<-e.C() // immediate snapshot
	e.Stop()

	select {
	case _, ok := <-e.C():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel never closed after Stop")
	}
}
