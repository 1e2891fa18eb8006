package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("empty cache should miss")
	}

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("get = %q, %v, %v", v, ok, err)
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	c := NewMemory()
	now := time.Now()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 20*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	now = now.Add(19 * time.Second)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatal("entry should still be live before the TTL")
	}

	now = now.Add(2 * time.Second)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("entry should expire after the TTL")
	}
}

func TestMemoryClear(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	_ = c.Set(ctx, "a", "1", time.Minute)
	_ = c.Set(ctx, "b", "2", time.Minute)
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("clear should drop every entry")
	}
}
