package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheHelper(client, "test:"), mr
}

type cachedUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	original := cachedUser{ID: "u1", Name: "Sam"}
	if err := helper.Set(ctx, "user:u1", original, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got cachedUser
	if err := helper.Get(ctx, "user:u1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != original {
		t.Errorf("Get() = %+v, want %+v", got, original)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper, _ := newTestCache(t)

	var got cachedUser
	err := helper.Get(context.Background(), "user:missing", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedUser{ID: "u1", Name: "Sam"}, nil
	}

	var first cachedUser
	if err := helper.CacheOrExecute(ctx, "user:u1", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", calls)
	}
	if first.Name != "Sam" {
		t.Errorf("unexpected result %+v", first)
	}

	// The write-behind set is async; wait for the key to land.
	deadline := time.Now().Add(time.Second)
	for {
		var cached cachedUser
		if err := helper.Get(ctx, "user:u1", &cached); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("cache never populated")
		}
		time.Sleep(5 * time.Millisecond)
	}

	var second cachedUser
	if err := helper.CacheOrExecute(ctx, "user:u1", &second, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute() second call error = %v", err)
	}
	if calls != 1 {
		t.Errorf("expected cache hit on second call, fetch ran %d times", calls)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"course:1", "course:2", "user:u1"} {
		if err := helper.Set(ctx, key, cachedUser{ID: key}, time.Minute); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "course:*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	var got cachedUser
	if err := helper.Get(ctx, "course:1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("course:1 should be gone, got %v", err)
	}
	if err := helper.Get(ctx, "user:u1", &got); err != nil {
		t.Errorf("user:u1 should survive, got %v", err)
	}
}

func TestCacheManager_NilClient(t *testing.T) {
	cm := NewCacheManager(nil)

	if err := cm.Fast.Set(context.Background(), "k", "v", time.Minute); err != nil {
		t.Errorf("Set on nil client should degrade gracefully, got %v", err)
	}
	if err := cm.HealthCheck(context.Background()); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
}
