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

// InvalidateEmployeeCache drops the cached row and list views for an employee
func InvalidateEmployeeCache(ctx context.Context, cm *CacheManager, employeeID string) {
	SafeDelete(ctx, cm.Employee, fmt.Sprintf("id:%s", employeeID))
	SafeInvalidatePattern(ctx, cm.Employee, "list:*")
	SafeInvalidatePattern(ctx, cm.Employee, "skill:*")
}

// InvalidateUserCache drops the cached mirror document for an account
func InvalidateUserCache(ctx context.Context, cm *CacheManager, uid, email string) {
	SafeDelete(ctx, cm.User, fmt.Sprintf("id:%s", uid))
	if email != "" {
		SafeDelete(ctx, cm.User, fmt.Sprintf("email:%s", email))
	}
	SafeInvalidatePattern(ctx, cm.Exists, fmt.Sprintf("user:%s*", uid))
}

// InvalidateLookupCache drops a cached lookup collection
func InvalidateLookupCache(ctx context.Context, cm *CacheManager, collection string) {
	SafeDelete(ctx, cm.Lookup, fmt.Sprintf("collection:%s", collection))
}
