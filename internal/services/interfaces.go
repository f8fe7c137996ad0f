package services

import (
	"context"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/security"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use business validator types
type LoginRequest = validator.LoginRequest
type RefreshTokenRequest = validator.RefreshTokenRequest
type VerifyTokenRequest = validator.VerifyTokenRequest
type ChangePasswordRequest = validator.ChangePasswordRequest
type ActivateAccountRequest = validator.ActivateAccountRequest
type RegisterRequest = validator.RegisterUserRequest
type UserUpdateRequest = validator.UserUpdateRequest
type TeacherCreateRequest = validator.TeacherCreateRequest
type TeacherUpdateRequest = validator.TeacherUpdateRequest
type StudentCreateRequest = validator.StudentCreateRequest
type StudentUpdateRequest = validator.StudentUpdateRequest

// ===== SERVICE INTERFACES =====

// AccountService covers authentication and credential lifecycle: login,
// token refresh and verification, self-registration, activation of
// provisioned accounts, and password changes.
type AccountService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.LoginResponse, error)
	Authenticate(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error)

	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	VerifyToken(ctx context.Context, token string) (*security.Claims, error)

	ActivateAccount(ctx context.Context, req *ActivateAccountRequest) (*models.ActivationResponse, error)
	ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error
}

// UserService is the admin-facing account directory.
type UserService interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, params models.ListParams, role *models.UserRole, isActive *bool) (*models.PaginatedResponse, error)
	Update(ctx context.Context, id uint, req *UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type TeacherService interface {
	Create(ctx context.Context, req *TeacherCreateRequest) (*models.Teacher, error)
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error)
	Update(ctx context.Context, id uint, req *TeacherUpdateRequest) (*models.Teacher, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params models.ListParams) (*models.PaginatedResponse, error)
}

// StudentService provisions and manages student records. Provisioned
// accounts start inactive with the shared default password and must be
// activated by their owner before login works.
type StudentService interface {
	Provision(ctx context.Context, req *StudentCreateRequest) (*models.ProvisionStudentResponse, error)
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Student, error)
	Update(ctx context.Context, id uint, req *StudentUpdateRequest) (*models.Student, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params models.ListParams) (*models.PaginatedResponse, error)

	// ExportRoster renders every student into an xlsx workbook.
	ExportRoster(ctx context.Context) ([]byte, error)
}

// ReferenceService is the uniform surface over the flat reference entities.
// Handlers bind and validate the typed request, map it onto the model, and
// hand the model here.
type ReferenceService[T any] interface {
	Create(ctx context.Context, entity *T) (*T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params models.ListParams) (*models.PaginatedResponse, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Account() AccountService
	User() UserService
	Teacher() TeacherService
	Student() StudentService

	// Reference data getters
	Course() ReferenceService[models.Course]
	Department() ReferenceService[models.Department]
	Day() ReferenceService[models.Day]
	Room() ReferenceService[models.Room]
	TableType() ReferenceService[models.TableType]
	Table() ReferenceService[models.Table]
	GroupStudent() ReferenceService[models.GroupStudent]

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
