package ttlcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.Local)
	c := New[string, int](5 * time.Minute).WithClock(func() time.Time { return now })

	c.Set("barberia", 42)

	v, ok := c.Get("barberia")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	now = now.Add(4*time.Minute + 59*time.Second)
	_, ok = c.Get("barberia")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get("barberia")
	assert.False(t, ok, "entry must expire exactly at ttl")

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Delete(t *testing.T) {
	c := New[string, string](time.Minute)
	c.Set("a", "x")
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}
