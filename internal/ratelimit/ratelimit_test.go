package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(perMinute, perHour int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(perMinute, perHour, true)
	rl.now = clock.now
	return rl, clock
}

func TestAllowRequest_MinuteWindow(t *testing.T) {
	rl, clock := newTestLimiter(2, 0)

	assert.True(t, rl.AllowRequest("a"))
	assert.True(t, rl.AllowRequest("a"))
	assert.False(t, rl.AllowRequest("a"))

	// other clients have their own window
	assert.True(t, rl.AllowRequest("b"))

	assert.Equal(t, time.Minute, rl.RetryAfter("a"))
	clock.advance(61 * time.Second)
	assert.True(t, rl.AllowRequest("a"))
}

func TestAllowRequest_HourWindow(t *testing.T) {
	rl, clock := newTestLimiter(10, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.AllowRequest("a"))
		clock.advance(2 * time.Minute)
	}
	assert.False(t, rl.AllowRequest("a"))
	assert.Equal(t, 54*time.Minute, rl.RetryAfter("a"))

	clock.advance(55 * time.Minute)
	assert.True(t, rl.AllowRequest("a"))
}

func TestDisabledAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(1, 1, false)
	for i := 0; i < 10; i++ {
		assert.True(t, rl.AllowRequest("a"))
	}
	assert.False(t, rl.GetStats("a").Enabled)
}

func TestStatsAndPrune(t *testing.T) {
	rl, clock := newTestLimiter(5, 100)
	rl.AllowRequest("a")
	rl.AllowRequest("a")
	rl.AllowRequest("b")

	s := rl.GetStats("a")
	assert.Equal(t, 2, s.Clients)
	assert.Equal(t, 2, s.RequestsLastMinute)
	assert.Equal(t, 3, s.RemainingThisMinute)

	clock.advance(2 * time.Hour)
	assert.Equal(t, 2, rl.Prune())
	assert.Zero(t, rl.GetStats("a").Clients)

	rl.AllowRequest("c")
	rl.Reset()
	assert.Zero(t, rl.GetStats("c").Clients)
}
