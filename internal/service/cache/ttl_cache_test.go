package cache

import (
	"errors"
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", 42, time.Minute)

	v, ok := c.Get("k")
	if !ok {
		t.Fatalf("expected hit")
	}
	if v.(int) != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("unexpected hit for missing key")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expired entry must miss")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", 0)
	time.Sleep(10 * time.Millisecond)

	if _, ok := c.Get("k"); !ok {
		t.Fatalf("zero TTL entry must not expire")
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", time.Minute)
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Fatalf("deleted entry must miss")
	}
}

func TestTTLCacheGetOrCompute(t *testing.T) {
	c := NewTTLCache()
	calls := 0
	compute := func() (any, error) {
		calls++
		return "computed", nil
	}

	v, err := c.GetOrCompute("k", time.Minute, compute)
	if err != nil {
		t.Fatalf("compute error: %v", err)
	}
	if v.(string) != "computed" {
		t.Fatalf("unexpected value: %v", v)
	}

	if _, err := c.GetOrCompute("k", time.Minute, compute); err != nil {
		t.Fatalf("cached read error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("compute should run once, ran %d times", calls)
	}
}

func TestTTLCacheGetOrComputeError(t *testing.T) {
	c := NewTTLCache()
	wantErr := errors.New("backend down")

	if _, err := c.GetOrCompute("k", time.Minute, func() (any, error) {
		return nil, wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("expected compute error, got %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Fatalf("failed compute must not cache")
	}
}
