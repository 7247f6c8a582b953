package collector

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func TestCache_TTL(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)}
	c := NewCache[int](30*time.Second, clk.Now)

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit, got %v/%v", v, ok)
	}

	clk.t = clk.t.Add(29 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Error("expected hit before ttl")
	}

	clk.t = clk.t.Add(time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("expected miss at ttl")
	}
}

func TestCache_Purge(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)}
	c := NewCache[string](time.Minute, clk.Now)

	c.Set("old", "x")
	clk.t = clk.t.Add(45 * time.Second)
	c.Set("new", "y")
	clk.t = clk.t.Add(30 * time.Second)

	if n := c.Purge(); n != 1 {
		t.Errorf("expected 1 purged entry, got %d", n)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 remaining entry, got %d", c.Len())
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("fresh entry should survive purge")
	}
}

func TestCache_InstancesAreIndependent(t *testing.T) {
	a := NewCache[int](time.Minute, nil)
	b := NewCache[int](time.Minute, nil)
	a.Set("k", 1)
	if _, ok := b.Get("k"); ok {
		t.Error("caches must not share state")
	}
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey("2330.TW", "1y", "1d"); got != "2330.TW|1y|1d" {
		t.Errorf("unexpected key %q", got)
	}
}
