package postgres

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/cache"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
)

// ReferencePostgreSQL is the shared gorm implementation behind every flat
// reference entity. The search column is the entity's title when it has one.
// Reads go through the redis reference cache; writes invalidate it.
type ReferencePostgreSQL[T any] struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
	table        string
	searchColumn string
}

func NewReferencePostgreSQL[T any](db *gorm.DB, cacheManager *cache.CacheManager, searchColumn string) repositories.ReferenceRepository[T] {
	var entity T
	table := ""
	if named, ok := any(&entity).(interface{ TableName() string }); ok {
		table = named.TableName()
	}

	return &ReferencePostgreSQL[T]{
		db:           db,
		cacheManager: cacheManager,
		table:        table,
		searchColumn: searchColumn,
	}
}

func (r *ReferencePostgreSQL[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return translateError(err)
	}

	cache.InvalidateReferenceCache(ctx, r.cacheManager, r.table, entityID(entity))
	return nil
}

func (r *ReferencePostgreSQL[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T

	err := r.cacheManager.Reference.CacheOrExecute(ctx, fmt.Sprintf("%s:id:%d", r.table, id), &entity,
		cache.ReferenceCacheConfig.TTL, func() (interface{}, error) {
			var fetched T
			if err := r.db.WithContext(ctx).First(&fetched, id).Error; err != nil {
				return nil, translateError(err)
			}
			return &fetched, nil
		})
	if err != nil {
		return nil, err
	}

	return &entity, nil
}

func (r *ReferencePostgreSQL[T]) Update(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return translateError(err)
	}

	cache.InvalidateReferenceCache(ctx, r.cacheManager, r.table, entityID(entity))
	return nil
}

func (r *ReferencePostgreSQL[T]) Delete(ctx context.Context, id uint) error {
	var entity T
	result := r.db.WithContext(ctx).Delete(&entity, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	cache.InvalidateReferenceCache(ctx, r.cacheManager, r.table, id)
	return nil
}

// referencePage is the cached shape of one List result
type referencePage[T any] struct {
	Items []*T  `json:"items"`
	Total int64 `json:"total"`
}

func (r *ReferencePostgreSQL[T]) List(ctx context.Context, filters repositories.ListFilters) ([]*T, int64, error) {
	var page referencePage[T]

	key := fmt.Sprintf("%s:list:q=%s:sort=%s,%s:limit=%d:offset=%d",
		r.table, filters.Query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	err := r.cacheManager.Reference.CacheOrExecute(ctx, key, &page,
		cache.ReferenceCacheConfig.TTL, func() (interface{}, error) {
			items, total, err := r.list(ctx, filters)
			if err != nil {
				return nil, err
			}
			return &referencePage[T]{Items: items, Total: total}, nil
		})
	if err != nil {
		return nil, 0, err
	}

	return page.Items, page.Total, nil
}

func (r *ReferencePostgreSQL[T]) list(ctx context.Context, filters repositories.ListFilters) ([]*T, int64, error) {
	var entity T
	query := r.db.WithContext(ctx).Model(&entity)

	if filters.Query != "" && r.searchColumn != "" {
		query = query.Where(r.searchColumn+" ILIKE ?", "%"+filters.Query+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var entities []*T
	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&entities).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return entities, total, nil
}

// entityID reads the primary key off a reference entity after gorm has
// populated it
func entityID(entity any) uint {
	v := reflect.Indirect(reflect.ValueOf(entity))
	if v.Kind() != reflect.Struct {
		return 0
	}
	f := v.FieldByName("ID")
	if !f.IsValid() || !f.CanUint() {
		return 0
	}
	return uint(f.Uint())
}
