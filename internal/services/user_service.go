package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.BusinessValidator) UserService {
	return &userService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, translateRepositoryError(err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, params models.ListParams, role *models.UserRole, isActive *bool) (*models.PaginatedResponse, error) {
	params = normalizeListParams(params)

	users, total, err := s.repo.User().List(ctx, repositories.UserFilters{
		Query:     params.Search,
		Role:      role,
		IsActive:  isActive,
		Limit:     params.Size,
		Offset:    params.Page * params.Size,
		SortBy:    params.SortBy,
		SortOrder: params.SortDir,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", translateRepositoryError(err))
	}

	return models.NewPaginatedResponse(users, total, params.Page, params.Size, len(users)), nil
}

// Update applies a partial update. Role and activity flags are admin-only;
// the route guard enforces that before this runs.
func (s *userService) Update(ctx context.Context, id uint, req *UserUpdateRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	if req.Email != nil {
		user.Email = req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.IsTeacher != nil {
		user.IsTeacher = *req.IsTeacher
	}
	if req.IsStudent != nil {
		user.IsStudent = *req.IsStudent
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, translateRepositoryError(err)
	}

	s.logger.Info("user updated", "user_id", user.ID)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.User().Delete(ctx, id); err != nil {
		return translateRepositoryError(err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
