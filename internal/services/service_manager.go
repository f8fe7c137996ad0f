package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/events"
	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
	"github.com/SAP-F-2025/academic-records-service/internal/security"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// Logging configuration
	EnableDebugLogging bool
	LogLevel           slog.Level

	// Provisioned accounts start with this password until activation
	DefaultStudentPassword string

	// Audit worker for the account event stream
	EventAuditingEnabled bool

	// Global settings
	DefaultTimeout time.Duration
}

// ServiceManagerDeps carries the cross-cutting collaborators services need
// beyond the repository: token issuing, event publishing and email delivery.
type ServiceManagerDeps struct {
	Tokens    *security.TokenManager
	Publisher events.EventPublisher
	Notifier  Notifier

	// Subscriber feeds the audit worker; usually the in-process side of the
	// event bus. Optional.
	Subscriber message.Subscriber
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.BusinessValidator
	deps      ServiceManagerDeps
	config    ServiceManagerConfig

	// Service instances
	accountService AccountService
	userService    UserService
	teacherService TeacherService
	studentService StudentService

	courseService       ReferenceService[models.Course]
	departmentService   ReferenceService[models.Department]
	dayService          ReferenceService[models.Day]
	roomService         ReferenceService[models.Room]
	tableTypeService    ReferenceService[models.TableType]
	tableService        ReferenceService[models.Table]
	groupStudentService ReferenceService[models.GroupStudent]

	auditor *EventAuditor

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.BusinessValidator, deps ServiceManagerDeps, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: v,
		deps:      deps,
		config:    config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.BusinessValidator, deps ServiceManagerDeps) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging:     false,
		LogLevel:               slog.LevelInfo,
		DefaultStudentPassword: "DefaultPass123!",
		EventAuditingEnabled:   true,
		DefaultTimeout:         30 * time.Second,
	}

	return NewServiceManager(db, repo, logger, v, deps, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if sm.deps.Tokens == nil {
		return fmt.Errorf("token manager is required")
	}

	sm.initializeServices()

	if sm.config.EventAuditingEnabled && sm.deps.Subscriber != nil {
		sm.auditor = NewEventAuditor(sm.deps.Subscriber, sm.logger)
		if err := sm.auditor.Start(ctx); err != nil {
			return fmt.Errorf("start event auditor: %w", err)
		}
		sm.logger.Info("Account event auditor started")
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) initializeServices() {
	sm.accountService = NewAccountService(sm.repo, sm.db, sm.logger, sm.validator, sm.deps.Tokens, sm.deps.Publisher)
	sm.logger.Info("Account service initialized")

	sm.userService = NewUserService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.logger.Info("User service initialized")

	sm.teacherService = NewTeacherService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.logger.Info("Teacher service initialized")

	sm.studentService = NewStudentService(sm.repo, sm.db, sm.logger, sm.validator, sm.deps.Publisher, sm.deps.Notifier, sm.config.DefaultStudentPassword)
	sm.logger.Info("Student service initialized")

	sm.courseService = NewReferenceService[models.Course](sm.repo.Course(), sm.logger, "course")
	sm.departmentService = NewReferenceService[models.Department](sm.repo.Department(), sm.logger, "department")
	sm.dayService = NewReferenceService[models.Day](sm.repo.Day(), sm.logger, "day")
	sm.roomService = NewReferenceService[models.Room](sm.repo.Room(), sm.logger, "room")
	sm.tableTypeService = NewReferenceService[models.TableType](sm.repo.TableType(), sm.logger, "table_type")
	sm.tableService = NewReferenceService[models.Table](sm.repo.Table(), sm.logger, "table")
	sm.groupStudentService = NewReferenceService[models.GroupStudent](sm.repo.GroupStudent(), sm.logger, "group_student")
	sm.logger.Info("Reference services initialized")
}

// Service getters
func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.accountService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.userService
}

func (sm *serviceManager) Teacher() TeacherService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.teacherService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.studentService
}

func (sm *serviceManager) Course() ReferenceService[models.Course] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.courseService
}

func (sm *serviceManager) Department() ReferenceService[models.Department] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.departmentService
}

func (sm *serviceManager) Day() ReferenceService[models.Day] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.dayService
}

func (sm *serviceManager) Room() ReferenceService[models.Room] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.roomService
}

func (sm *serviceManager) TableType() ReferenceService[models.TableType] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.tableTypeService
}

func (sm *serviceManager) Table() ReferenceService[models.Table] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.tableService
}

func (sm *serviceManager) GroupStudent() ReferenceService[models.GroupStudent] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.groupStudentService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.auditor != nil {
		if err := sm.auditor.Stop(ctx); err != nil {
			sm.logger.Error("Failed to stop event auditor", "error", err)
		}
	}

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// ===== HELPER FUNCTIONS =====

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, sm.config.DefaultTimeout)
}
