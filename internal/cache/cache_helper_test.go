package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "user:"), mr
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	in := cachedUser{ID: 7, Username: "alice"}
	if err := helper.Set(ctx, "id:7", in, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out cachedUser
	if err := helper.Get(ctx, "id:7", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out != in {
		t.Errorf("Get = %+v, want %+v", out, in)
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var out cachedUser
	err := helper.Get(context.Background(), "id:404", &out)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", cachedUser{ID: 1}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := helper.Set(ctx, "id:2", cachedUser{ID: 2}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := helper.Delete(ctx, "id:1", "id:2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var out cachedUser
	if err := helper.Get(ctx, "id:1", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected ErrCacheNotFound after delete, got %v", err)
	}
}

func TestCacheHelper_Expiry(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "id:9", cachedUser{ID: 9}, time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	var out cachedUser
	if err := helper.Get(ctx, "id:9", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected ErrCacheNotFound after expiry, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"list:page:0", "list:page:1", "id:3"} {
		if err := helper.Set(ctx, key, cachedUser{ID: 3}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	var out cachedUser
	if err := helper.Get(ctx, "list:page:0", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected list entries invalidated, got %v", err)
	}
	if err := helper.Get(ctx, "id:3", &out); err != nil {
		t.Errorf("expected id entry untouched, got %v", err)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "user:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", cachedUser{ID: 1}, time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}

	var out cachedUser
	if err := helper.Get(ctx, "id:1", &out); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}

	if err := helper.Delete(ctx, "id:1"); err != nil {
		t.Errorf("Delete with nil client should be a no-op, got %v", err)
	}
}

func TestCacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedUser{ID: 11, Username: "bob"}, nil
	}

	var out cachedUser
	if err := helper.CacheOrExecute(ctx, "id:11", &out, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected one fetch call, got %d", calls)
	}
	if out.Username != "bob" {
		t.Errorf("unexpected result: %+v", out)
	}

	// The async cache write may land slightly after return
	deadline := time.Now().Add(time.Second)
	for {
		var cached cachedUser
		if err := helper.Get(ctx, "id:11", &cached); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("cached value never appeared")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := helper.CacheOrExecute(ctx, "id:11", &out, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute (cached) failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected cache hit without a second fetch, got %d calls", calls)
	}
}
