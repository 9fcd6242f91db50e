package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", map[string]int{"n": 7}, time.Minute); err != nil {
		t.Fatalf("set error: %v", err)
	}
	var got map[string]int
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got["n"] != 7 {
		t.Fatalf("expected 7, got %v", got)
	}

	var s string
	if err := c.Set(ctx, "raw", "plain", 0); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if err := c.Get(ctx, "raw", &s); err != nil || s != "plain" {
		t.Fatalf("string passthrough failed: %v %q", err, s)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	var dest string
	if err := c.Get(context.Background(), "absent", &dest); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 5*time.Millisecond); err != nil {
		t.Fatalf("set error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	var dest string
	if err := c.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expired key must miss, got %v", err)
	}
	ok, err := c.Exists(ctx, "k")
	if err != nil || ok {
		t.Fatalf("expired key must not exist: %v %v", ok, err)
	}
}

func TestMemoryCacheIncrement(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := c.Increment(ctx, "counter")
		if err != nil {
			t.Fatalf("increment error: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}

func TestMemoryCacheExpire(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	ok, err := c.Expire(ctx, "absent", time.Minute)
	if err != nil || ok {
		t.Fatalf("expire on missing key must be false: %v %v", ok, err)
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set error: %v", err)
	}
	ok, err = c.Expire(ctx, "k", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expire on live key must be true: %v %v", ok, err)
	}
}

func TestCacheKey(t *testing.T) {
	if got := Key("alert", "last", 42); got != "alert:last:42" {
		t.Fatalf("unexpected key: %q", got)
	}
}
