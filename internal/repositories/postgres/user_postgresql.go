package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/cache"
	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
)

// UserPostgreSQL implements UserRepository with a redis read-through cache
// for by-ID lookups and existence checks. Credential lookups always hit the
// database.
type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (r *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err)
	}

	// A cached negative existence check would now be stale
	cache.InvalidateUserCache(ctx, r.cacheManager, user.ID, user.Username)
	return nil
}

func (r *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	err := r.cacheManager.User.CacheOrExecute(ctx, fmt.Sprintf("id:%d", id), &user,
		cache.UserCacheConfig.TTL, func() (interface{}, error) {
			var fetched models.User
			if err := r.db.WithContext(ctx).First(&fetched, id).Error; err != nil {
				return nil, translateError(err)
			}
			return &fetched, nil
		})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserPostgreSQL) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return translateError(err)
	}

	cache.InvalidateUserCache(ctx, r.cacheManager, user.ID, user.Username)
	return nil
}

func (r *UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Role profiles go with the user via ON DELETE CASCADE
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return translateError(err)
	}

	cache.InvalidateUserCache(ctx, r.cacheManager, id, user.Username)
	return nil
}

func (r *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	query = r.applyUserFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var users []*models.User
	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return users, total, nil
}

func (r *UserPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var exists bool

	err := r.cacheManager.Exists.CacheOrExecute(ctx, fmt.Sprintf("user:id:%d", id), &exists,
		cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
			var count int64
			err := r.db.WithContext(ctx).
				Model(&models.User{}).
				Where("id = ?", id).
				Count(&count).Error
			if err != nil {
				return nil, translateError(err)
			}
			return count > 0, nil
		})
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *UserPostgreSQL) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool

	err := r.cacheManager.Exists.CacheOrExecute(ctx, fmt.Sprintf("user:username:%s", username), &exists,
		cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
			var count int64
			err := r.db.WithContext(ctx).
				Model(&models.User{}).
				Where("username = ?", username).
				Count(&count).Error
			if err != nil {
				return nil, translateError(err)
			}
			return count > 0, nil
		})
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *UserPostgreSQL) applyUserFilters(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where(
			"username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			like, like, like, like)
	}
	if filters.Role != nil {
		switch *filters.Role {
		case models.RoleAdmin:
			query = query.Where("is_admin = true")
		case models.RoleStaff:
			query = query.Where("is_staff = true")
		case models.RoleTeacher:
			query = query.Where("is_teacher = true")
		case models.RoleStudent:
			query = query.Where("is_student = true")
		}
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	return query
}
