package cache

import (
	"testing"
	"time"
)

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[float64](2, time.Minute)

	if _, ok := c.Get("USD"); ok {
		t.Error("empty cache must miss")
	}
	c.Set("USD", 92.5)
	if v, ok := c.Get("USD"); !ok || v != 92.5 {
		t.Errorf("Get(USD) = %v, %v; want 92.5, true", v, ok)
	}
}

func TestLRU_EvictsOldest(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts a

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_TTLExpiry(t *testing.T) {
	c := NewLRU[int](10, -time.Second) // already expired on insert
	c.Set("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry must miss")
	}
}

func TestLRU_RecentUseProtectsFromEviction(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")    // a becomes most recent
	c.Set("c", 3) // evicts b

	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry must survive")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry must be evicted")
	}
}
