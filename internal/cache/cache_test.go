package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageCachePutGet(t *testing.T) {
	c := NewPageCache(time.Minute)

	_, ok := c.Get("feed")
	assert.False(t, ok)

	c.Put("feed", []byte("rendered"))
	data, ok := c.Get("feed")
	assert.True(t, ok)
	assert.Equal(t, []byte("rendered"), data)
}

func TestPageCacheExpiry(t *testing.T) {
	c := NewPageCache(20 * time.Millisecond)

	c.Put("feed", []byte("rendered"))
	_, ok := c.Get("feed")
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = c.Get("feed")
	assert.False(t, ok, "Entry must expire after the TTL")
}

func TestPageCacheClear(t *testing.T) {
	c := NewPageCache(time.Minute)

	c.Put("feed", []byte("rendered"))
	c.Put("feed?page=2", []byte("rendered page two"))
	c.Clear()

	_, ok := c.Get("feed")
	assert.False(t, ok)
	_, ok = c.Get("feed?page=2")
	assert.False(t, ok)
}

func TestPageCacheOverwrite(t *testing.T) {
	c := NewPageCache(time.Minute)

	c.Put("feed", []byte("old"))
	c.Put("feed", []byte("new"))

	data, ok := c.Get("feed")
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), data)
}
