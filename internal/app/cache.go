package app

import (
	"context"

	"go-hrm/internal/department"
	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/fives"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator drops the Redis views derived from a changed collection.
type CacheInvalidator struct {
	rdb *redis.Client
}

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator {
	return &CacheInvalidator{rdb: rdb}
}

// KeysFor returns the cache keys a change event makes stale.
func KeysFor(event events.ChangeEvent) []string {
	switch event.Collection {
	case events.CollectionEmployees:
		return []string{employee.EmployeeOptionsKey}
	case events.CollectionDepartments:
		return []string{department.DepartmentListKey, employee.EmployeeOptionsKey}
	default:
		return nil
	}
}

// RetiresRankings reports whether the event touches data the cached 5S
// rankings embed.
func RetiresRankings(event events.ChangeEvent) bool {
	return event.Collection == events.CollectionInspections ||
		event.Collection == events.CollectionDepartments
}

func (c *CacheInvalidator) Invalidate(ctx context.Context, event events.ChangeEvent) error {
	if c.rdb == nil {
		return nil
	}
	if keys := KeysFor(event); len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	if RetiresRankings(event) {
		return fives.InvalidateRankings(ctx, c.rdb)
	}
	return nil
}
