package repositories

import (
	"context"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Query     string // Search query for username, name or email
	Role      *models.UserRole
	IsActive  *bool
	Limit     int
	Offset    int
	SortBy    string // "created_at", "username", "id"
	SortOrder string // "asc", "desc"
}

type ListFilters struct {
	Query     string
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// ===== USER DOMAIN =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// ===== PROFILE DOMAIN =====

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ListFilters) ([]*models.Teacher, int64, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ListFilters) ([]*models.Student, int64, error)

	// ListAll returns every student with user and course preloaded, for exports
	ListAll(ctx context.Context) ([]*models.Student, error)
}

// ===== REFERENCE DOMAIN =====

// ReferenceRepository is the uniform CRUD surface shared by the flat
// reference entities (courses, departments, rooms, days, ...).
type ReferenceRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ListFilters) ([]*T, int64, error)
}
