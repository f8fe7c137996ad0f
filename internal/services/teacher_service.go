package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
	"github.com/SAP-F-2025/academic-records-service/internal/security"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

type teacherService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewTeacherService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.BusinessValidator) TeacherService {
	return &teacherService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

// Create builds an active teacher account: the user record and its teacher
// profile are written in one transaction.
func (s *teacherService) Create(ctx context.Context, req *TeacherCreateRequest) (*models.Teacher, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if req.User.Password != req.User.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	hash, err := security.HashPassword(req.User.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.User.Username,
		Email:        req.User.Email,
		FirstName:    req.User.FirstName,
		LastName:     req.User.LastName,
		PhoneNumber:  req.User.PhoneNumber,
		PasswordHash: hash,
		IsActive:     true,
		IsTeacher:    true,
	}

	teacher := &models.Teacher{
		DepartmentID:   req.DepartmentID,
		Bio:            req.Bio,
		Specialization: req.Specialization,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, user); err != nil {
			return err
		}
		teacher.UserID = user.ID
		return txRepo.Teacher().Create(ctx, teacher)
	})
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	s.logger.Info("teacher created", "teacher_id", teacher.ID, "user_id", user.ID)

	teacher.User = user
	return teacher, nil
}

func (s *teacherService) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	teacher, err := s.repo.Teacher().GetByID(ctx, id)
	if err != nil {
		return nil, translateRepositoryError(err)
	}
	return teacher, nil
}

func (s *teacherService) GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error) {
	teacher, err := s.repo.Teacher().GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateRepositoryError(err)
	}
	return teacher, nil
}

func (s *teacherService) Update(ctx context.Context, id uint, req *TeacherUpdateRequest) (*models.Teacher, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	teacher, err := s.repo.Teacher().GetByID(ctx, id)
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	if req.DepartmentID != nil {
		teacher.DepartmentID = req.DepartmentID
	}
	if req.Bio != nil {
		teacher.Bio = req.Bio
	}
	if req.Specialization != nil {
		teacher.Specialization = req.Specialization
	}

	if err := s.repo.Teacher().Update(ctx, teacher); err != nil {
		return nil, translateRepositoryError(err)
	}

	s.logger.Info("teacher updated", "teacher_id", teacher.ID)
	return teacher, nil
}

// Delete removes the profile only; the owning user account stays.
func (s *teacherService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Teacher().Delete(ctx, id); err != nil {
		return translateRepositoryError(err)
	}

	s.logger.Info("teacher deleted", "teacher_id", id)
	return nil
}

func (s *teacherService) List(ctx context.Context, params models.ListParams) (*models.PaginatedResponse, error) {
	params = normalizeListParams(params)

	teachers, total, err := s.repo.Teacher().List(ctx, toListFilters(params))
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", translateRepositoryError(err))
	}

	return models.NewPaginatedResponse(teachers, total, params.Page, params.Size, len(teachers)), nil
}
