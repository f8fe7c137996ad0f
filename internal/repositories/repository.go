package repositories

import (
	"context"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
)

// Repository aggregates every entity repository behind one interface
type Repository interface {
	// Account domain
	User() UserRepository
	Teacher() TeacherRepository
	Student() StudentRepository

	// Reference domain
	Course() ReferenceRepository[models.Course]
	Department() ReferenceRepository[models.Department]
	Day() ReferenceRepository[models.Day]
	Room() ReferenceRepository[models.Room]
	TableType() ReferenceRepository[models.TableType]
	Table() ReferenceRepository[models.Table]
	GroupStudent() ReferenceRepository[models.GroupStudent]

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
