package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/cache"
	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	// Repository instances
	user    repositories.UserRepository
	teacher repositories.TeacherRepository
	student repositories.StudentRepository

	course       repositories.ReferenceRepository[models.Course]
	department   repositories.ReferenceRepository[models.Department]
	day          repositories.ReferenceRepository[models.Day]
	room         repositories.ReferenceRepository[models.Room]
	tableType    repositories.ReferenceRepository[models.TableType]
	table        repositories.ReferenceRepository[models.Table]
	groupStudent repositories.ReferenceRepository[models.GroupStudent]
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a new repository with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}
	repo.initSubRepositories(config.DB)

	return repo
}

func (r *PostgreSQLRepository) initSubRepositories(db *gorm.DB) {
	r.user = NewUserPostgreSQL(db, r.cacheManager)
	r.teacher = NewTeacherPostgreSQL(db)
	r.student = NewStudentPostgreSQL(db)

	r.course = NewReferencePostgreSQL[models.Course](db, r.cacheManager, "title")
	r.department = NewReferencePostgreSQL[models.Department](db, r.cacheManager, "title")
	r.day = NewReferencePostgreSQL[models.Day](db, r.cacheManager, "title")
	r.room = NewReferencePostgreSQL[models.Room](db, r.cacheManager, "title")
	r.tableType = NewReferencePostgreSQL[models.TableType](db, r.cacheManager, "title")
	r.table = NewReferencePostgreSQL[models.Table](db, r.cacheManager, "")
	r.groupStudent = NewReferencePostgreSQL[models.GroupStudent](db, r.cacheManager, "")
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Teacher() repositories.TeacherRepository {
	return r.teacher
}

func (r *PostgreSQLRepository) Student() repositories.StudentRepository {
	return r.student
}

func (r *PostgreSQLRepository) Course() repositories.ReferenceRepository[models.Course] {
	return r.course
}

func (r *PostgreSQLRepository) Department() repositories.ReferenceRepository[models.Department] {
	return r.department
}

func (r *PostgreSQLRepository) Day() repositories.ReferenceRepository[models.Day] {
	return r.day
}

func (r *PostgreSQLRepository) Room() repositories.ReferenceRepository[models.Room] {
	return r.room
}

func (r *PostgreSQLRepository) TableType() repositories.ReferenceRepository[models.TableType] {
	return r.tableType
}

func (r *PostgreSQLRepository) Table() repositories.ReferenceRepository[models.Table] {
	return r.table
}

func (r *PostgreSQLRepository) GroupStudent() repositories.ReferenceRepository[models.GroupStudent] {
	return r.groupStudent
}

// WithTransaction executes a function within a database transaction. The
// callback receives a Repository bound to the transaction connection.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}
		txRepo.initSubRepositories(tx)

		return fn(txRepo)
	})
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{
		config: config,
	}
}

// Initialize initializes all repositories and connections
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
	}

	rm.repo = NewPostgreSQLRepository(rm.config)

	return nil
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}
