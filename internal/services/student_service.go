package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/events"
	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
	"github.com/SAP-F-2025/academic-records-service/internal/security"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

type studentService struct {
	repo            repositories.Repository
	db              *gorm.DB
	logger          *slog.Logger
	validator       *validator.BusinessValidator
	publisher       events.EventPublisher
	notifier        Notifier
	defaultPassword string
}

func NewStudentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.BusinessValidator, publisher events.EventPublisher, notifier Notifier, defaultPassword string) StudentService {
	return &studentService{
		repo:            repo,
		db:              db,
		logger:          logger,
		validator:       v,
		publisher:       publisher,
		notifier:        notifier,
		defaultPassword: defaultPassword,
	}
}

// ===== PROVISIONING =====

// Provision creates an inactive student account holding the shared default
// password. The owner receives activation instructions by email and must
// activate the account before they can log in. Email delivery failures are
// logged but never fail the provisioning call.
func (s *studentService) Provision(ctx context.Context, req *StudentCreateRequest) (*models.ProvisionStudentResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	hash, err := security.HashPassword(s.defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	email := req.User.Email
	user := &models.User{
		Username:     req.User.Username,
		Email:        &email,
		FirstName:    req.User.FirstName,
		LastName:     req.User.LastName,
		PhoneNumber:  req.User.PhoneNumber,
		PasswordHash: hash,
		IsActive:     false,
		IsStudent:    true,
	}

	student := &models.Student{
		CourseID:  req.CourseID,
		StudentID: req.StudentID,
	}
	if req.EnrollmentDate != nil {
		date, err := parseEnrollmentDate(*req.EnrollmentDate)
		if err != nil {
			return nil, err
		}
		student.EnrollmentDate = date
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, user); err != nil {
			return err
		}
		student.UserID = user.ID
		return txRepo.Student().Create(ctx, student)
	})
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	s.logger.Info("student provisioned", "student_id", student.ID, "user_id", user.ID, "username", user.Username)

	if s.notifier != nil {
		if err := s.notifier.SendAccountProvisioned(ctx, email, user.Username, s.defaultPassword); err != nil {
			s.logger.Warn("failed to send provisioning email", "user_id", user.ID, "error", err)
		}
	}

	s.publishEvent(ctx, events.EventAccountProvisioned, &events.AccountProvisionedEvent{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     email,
		FirstName: user.FirstName,
	})

	student.User = user
	return &models.ProvisionStudentResponse{
		Student: student,
		Message: "Student account created. Activation instructions were sent by email.",
	}, nil
}

// ===== CRUD =====

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, translateRepositoryError(err)
	}
	return student, nil
}

func (s *studentService) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateRepositoryError(err)
	}
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req *StudentUpdateRequest) (*models.Student, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	if req.CourseID != nil {
		student.CourseID = req.CourseID
	}
	if req.StudentID != nil {
		student.StudentID = *req.StudentID
	}
	if req.EnrollmentDate != nil {
		date, err := parseEnrollmentDate(*req.EnrollmentDate)
		if err != nil {
			return nil, err
		}
		student.EnrollmentDate = date
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, translateRepositoryError(err)
	}

	s.logger.Info("student updated", "student_id", student.ID)
	return student, nil
}

// Delete removes the profile only; the owning user account stays.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Student().Delete(ctx, id); err != nil {
		return translateRepositoryError(err)
	}

	s.logger.Info("student deleted", "student_id", id)
	return nil
}

func (s *studentService) List(ctx context.Context, params models.ListParams) (*models.PaginatedResponse, error) {
	params = normalizeListParams(params)

	students, total, err := s.repo.Student().List(ctx, toListFilters(params))
	if err != nil {
		return nil, fmt.Errorf("list students: %w", translateRepositoryError(err))
	}

	return models.NewPaginatedResponse(students, total, params.Page, params.Size, len(students)), nil
}

// ===== EXPORT =====

var rosterHeaders = []string{"Student ID", "Username", "First Name", "Last Name", "Email", "Course", "Enrollment Date", "Active"}

// ExportRoster renders the full student roster into an xlsx workbook.
func (s *studentService) ExportRoster(ctx context.Context) ([]byte, error) {
	students, err := s.repo.Student().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", translateRepositoryError(err))
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	for col, header := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, student := range students {
		values := rosterRow(student)
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	s.logger.Info("student roster exported", "count", len(students))
	return buf.Bytes(), nil
}

func rosterRow(student *models.Student) []interface{} {
	var username, firstName, lastName, email string
	var active bool
	if student.User != nil {
		username = student.User.Username
		firstName = student.User.FirstName
		lastName = student.User.LastName
		if student.User.Email != nil {
			email = *student.User.Email
		}
		active = student.User.IsActive
	}

	var course string
	if student.Course != nil {
		course = student.Course.Title
	}

	var enrollment string
	if student.EnrollmentDate != nil {
		enrollment = time.Time(*student.EnrollmentDate).Format("2006-01-02")
	}

	return []interface{}{student.StudentID, username, firstName, lastName, email, course, enrollment, active}
}

func (s *studentService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	event := events.NewEvent(eventType, data)
	if err := s.publisher.Publish(ctx, events.TopicAccountEvents, event); err != nil {
		s.logger.Warn("failed to publish account event", "type", eventType, "error", err)
	}
}
