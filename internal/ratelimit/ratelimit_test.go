package ratelimit

import (
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	l := New(15*time.Minute, 5, WithClock(func() time.Time { return now }))

	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("1.2.3.4"), "request %d should be admitted", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4"), "sixth request must be rejected")
	assert.False(t, l.Allow("1.2.3.4"))

	// Once the window elapses the counter resets entirely.
	now = now.Add(15*time.Minute + time.Second)
	assert.True(t, l.Allow("1.2.3.4"))
}

func TestKeysIndependent(t *testing.T) {
	l := New(15*time.Minute, 1)
	require.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestDefaults(t *testing.T) {
	l := New(0, 0)
	assert.Equal(t, DefaultWindow, l.window)
	assert.Equal(t, DefaultMax, l.max)
}

func TestLastSlotNoDoubleAdmission(t *testing.T) {
	l := New(15*time.Minute, 5)
	for i := 0; i < 4; i++ {
		require.True(t, l.Allow("shared"))
	}

	// Two concurrent requests race for the single remaining slot; exactly
	// one may win.
	var admitted atomic.Int32
	var start, done sync.WaitGroup
	start.Add(1)
	for i := 0; i < 2; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			if l.Allow("shared") {
				admitted.Add(1)
			}
		}()
	}
	start.Done()
	done.Wait()
	assert.Equal(t, int32(1), admitted.Load())
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest("POST", "/applications", nil)
	assert.Equal(t, "unknown", ClientKey(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", ClientKey(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientKey(r))
}
