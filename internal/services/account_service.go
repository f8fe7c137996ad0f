package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/events"
	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
	"github.com/SAP-F-2025/academic-records-service/internal/security"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

type accountService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.BusinessValidator
	tokens    *security.TokenManager
	publisher events.EventPublisher
}

func NewAccountService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.BusinessValidator, tokens *security.TokenManager, publisher events.EventPublisher) AccountService {
	return &accountService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		tokens:    tokens,
		publisher: publisher,
	}
}

// ===== REGISTRATION =====

// Register creates an active account plus the role profile named in the
// request. User and profile land in one transaction so a rejected profile
// never leaves an orphaned account behind.
func (s *accountService) Register(ctx context.Context, req *RegisterRequest) (*models.LoginResponse, error) {
	if errs := s.validator.ValidateRegister(req); len(errs) > 0 {
		return nil, errs
	}

	if req.Password != req.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		IsActive:     true,
		IsTeacher:    req.Role == "teacher",
		IsStudent:    req.Role == "student",
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, user); err != nil {
			return err
		}

		switch req.Role {
		case "teacher":
			teacher := &models.Teacher{UserID: user.ID}
			if req.Teacher != nil {
				teacher.DepartmentID = req.Teacher.DepartmentID
				teacher.Bio = req.Teacher.Bio
				teacher.Specialization = req.Teacher.Specialization
			}
			return txRepo.Teacher().Create(ctx, teacher)

		case "student":
			student := &models.Student{
				UserID:    user.ID,
				CourseID:  req.Student.CourseID,
				StudentID: req.Student.StudentID,
			}
			if req.Student.EnrollmentDate != nil {
				date, err := parseEnrollmentDate(*req.Student.EnrollmentDate)
				if err != nil {
					return err
				}
				student.EnrollmentDate = date
			}
			return txRepo.Student().Create(ctx, student)
		}

		return nil
	})
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username, "role", req.Role)

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &models.LoginResponse{User: user, Token: pair}, nil
}

// ===== AUTHENTICATION =====

// Authenticate checks username and password. Unknown usernames and wrong
// passwords produce the same error so the response never reveals which
// part was wrong.
func (s *accountService) Authenticate(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if translateRepositoryError(err) == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.logger.Info("user authenticated", "user_id", user.ID, "username", user.Username)

	return &models.LoginResponse{User: user, Token: pair}, nil
}

func (s *accountService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return s.tokens.Refresh(refreshToken)
}

func (s *accountService) VerifyToken(ctx context.Context, token string) (*security.Claims, error) {
	return s.tokens.Verify(token)
}

// ===== ACTIVATION =====

// ActivateAccount turns a provisioned account live: the owner proves they
// hold the temporary password, sets their own, and gets a token pair back.
func (s *accountService) ActivateAccount(ctx context.Context, req *ActivateAccountRequest) (*models.ActivationResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if translateRepositoryError(err) == ErrNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.IsActive {
		return nil, ErrAlreadyActive
	}

	// Proof of the temporary password comes before any checks on the new one
	ok, err := security.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if req.NewPassword != req.NewPasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	if req.NewPassword == req.CurrentPassword {
		return nil, ErrSamePassword
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	user.IsActive = true
	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, translateRepositoryError(err)
	}

	s.logger.Info("account activated", "user_id", user.ID, "username", user.Username)
	s.publishEvent(ctx, events.EventAccountActivated, &events.AccountActivatedEvent{
		UserID:   user.ID,
		Username: user.Username,
	})

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &models.ActivationResponse{
		Message: "Account activated successfully",
		Token:   pair,
	}, nil
}

// ===== PASSWORD CHANGE =====

func (s *accountService) ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return translateRepositoryError(err)
	}

	ok, err := security.VerifyPassword(req.OldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	if req.NewPassword != req.NewPasswordConfirm {
		return ErrPasswordMismatch
	}

	if req.NewPassword == req.OldPassword {
		return ErrSamePassword
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	if err := s.repo.User().Update(ctx, user); err != nil {
		return translateRepositoryError(err)
	}

	s.logger.Info("password changed", "user_id", user.ID)
	s.publishEvent(ctx, events.EventPasswordChanged, &events.PasswordChangedEvent{
		UserID:   user.ID,
		Username: user.Username,
	})

	return nil
}

// publishEvent emits an account lifecycle event off the critical path;
// publish failures are logged, never surfaced to the caller.
func (s *accountService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	event := events.NewEvent(eventType, data)
	if err := s.publisher.Publish(ctx, events.TopicAccountEvents, event); err != nil {
		s.logger.Warn("failed to publish account event", "type", eventType, "error", err)
	}
}
