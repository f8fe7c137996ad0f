package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateUserCache drops every cached view of a user after a write: the
// by-ID record plus both existence checks
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID uint, username string) {
	SafeDelete(ctx, cm.User, fmt.Sprintf("id:%d", userID))
	SafeDelete(ctx, cm.Exists,
		fmt.Sprintf("user:id:%d", userID),
		fmt.Sprintf("user:username:%s", username))
}

// InvalidateReferenceCache drops cached reference rows for a table after a write
func InvalidateReferenceCache(ctx context.Context, cm *CacheManager, table string, id uint) {
	SafeDelete(ctx, cm.Reference, fmt.Sprintf("%s:id:%d", table, id))
	SafeInvalidatePattern(ctx, cm.Reference, fmt.Sprintf("%s:list:*", table))
}
