package neis

import (
	"context"
	"testing"
	"time"
)

func TestCache_GetSetExpiry(t *testing.T) {
	cache := NewCache(10 * time.Minute)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	rows := []Row{{"MLSV_YMD": "20250610"}}
	cache.Set("meal:20250610", rows)

	got, ok := cache.Get("meal:20250610")
	if !ok || len(got) != 1 {
		t.Fatalf("Get = (%v, %v), want hit", got, ok)
	}

	now = now.Add(9 * time.Minute)
	if _, ok := cache.Get("meal:20250610"); !ok {
		t.Error("entry expired before TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get("meal:20250610"); ok {
		t.Error("entry survived past TTL")
	}
}

func TestCache_DisabledWhenZeroTTL(t *testing.T) {
	cache := NewCache(0)
	cache.Set("k", []Row{{"a": "b"}})
	if _, ok := cache.Get("k"); ok {
		t.Error("zero-TTL cache should never hit")
	}
	if cache.Len() != 0 {
		t.Errorf("Len = %d, want 0", cache.Len())
	}
}

func TestCache_Sweep(t *testing.T) {
	cache := NewCache(time.Minute)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("old", []Row{})
	now = now.Add(30 * time.Second)
	cache.Set("fresh", []Row{})

	now = now.Add(45 * time.Second)
	if removed := cache.Sweep(); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if _, ok := cache.Get("fresh"); !ok {
		t.Error("fresh entry removed by sweep")
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1", cache.Len())
	}
}

func TestRetryWithBackoff_PermanentStops(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return permanent(errSentinel)
	})
	if err != errSentinel {
		t.Errorf("err = %v, want unwrapped sentinel", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

var errSentinel = &permanentTestError{}

type permanentTestError struct{}

func (*permanentTestError) Error() string { return "boom" }
