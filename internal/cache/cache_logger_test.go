package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) *CacheManager {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheManager(client)
}

func TestInvalidateUserCache(t *testing.T) {
	cm := newTestManager(t)
	ctx := context.Background()

	if err := cm.User.Set(ctx, "id:7", cachedUser{ID: 7, Username: "alice"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cm.Exists.Set(ctx, "user:id:7", true, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cm.Exists.Set(ctx, "user:username:alice", true, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	InvalidateUserCache(ctx, cm, 7, "alice")

	var user cachedUser
	if err := cm.User.Get(ctx, "id:7", &user); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected user record invalidated, got %v", err)
	}
	var exists bool
	if err := cm.Exists.Get(ctx, "user:id:7", &exists); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected by-ID existence check invalidated, got %v", err)
	}
	if err := cm.Exists.Get(ctx, "user:username:alice", &exists); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected by-username existence check invalidated, got %v", err)
	}
}

func TestInvalidateUserCache_LeavesOtherUsersAlone(t *testing.T) {
	cm := newTestManager(t)
	ctx := context.Background()

	if err := cm.User.Set(ctx, "id:8", cachedUser{ID: 8, Username: "carol"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	InvalidateUserCache(ctx, cm, 7, "alice")

	var user cachedUser
	if err := cm.User.Get(ctx, "id:8", &user); err != nil {
		t.Errorf("expected other user untouched, got %v", err)
	}
}

func TestInvalidateReferenceCache(t *testing.T) {
	cm := newTestManager(t)
	ctx := context.Background()

	type course struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}

	if err := cm.Reference.Set(ctx, "courses:id:3", course{ID: 3, Title: "Algebra"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cm.Reference.Set(ctx, "courses:list:q=:sort=,:limit=20:offset=0", []course{{ID: 3}}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cm.Reference.Set(ctx, "rooms:id:3", course{ID: 3}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	InvalidateReferenceCache(ctx, cm, "courses", 3)

	var out course
	if err := cm.Reference.Get(ctx, "courses:id:3", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected course record invalidated, got %v", err)
	}
	var list []course
	if err := cm.Reference.Get(ctx, "courses:list:q=:sort=,:limit=20:offset=0", &list); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected course lists invalidated, got %v", err)
	}
	if err := cm.Reference.Get(ctx, "rooms:id:3", &out); err != nil {
		t.Errorf("expected other table untouched, got %v", err)
	}
}

func TestInvalidateWithNilClientIsNoOp(t *testing.T) {
	cm := NewCacheManager(nil)
	ctx := context.Background()

	InvalidateUserCache(ctx, cm, 7, "alice")
	InvalidateReferenceCache(ctx, cm, "courses", 3)
}
