package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
)

// ===== TEACHER PROFILES =====

type TeacherPostgreSQL struct {
	db *gorm.DB
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &TeacherPostgreSQL{db: db}
}

func (r *TeacherPostgreSQL) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Create(teacher).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *TeacherPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		First(&teacher, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &teacher, nil
}

func (r *TeacherPostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Where("user_id = ?", userID).
		First(&teacher).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &teacher, nil
}

func (r *TeacherPostgreSQL) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Save(teacher).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *TeacherPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Teacher{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TeacherPostgreSQL) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Teacher, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Teacher{})

	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.
			Joins("JOIN users ON users.id = teachers.user_id").
			Where("users.username ILIKE ? OR users.first_name ILIKE ? OR users.last_name ILIKE ? OR teachers.specialization ILIKE ?",
				like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var teachers []*models.Teacher
	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	err := query.
		Preload("User").
		Preload("Department").
		Find(&teachers).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	return teachers, total, nil
}

// ===== STUDENT PROFILES =====

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (r *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		First(&student, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &student, nil
}

func (r *StudentPostgreSQL) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("user_id = ?", userID).
		First(&student).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &student, nil
}

func (r *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Save(student).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *StudentPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *StudentPostgreSQL) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.
			Joins("JOIN users ON users.id = students.user_id").
			Where("users.username ILIKE ? OR users.first_name ILIKE ? OR users.last_name ILIKE ? OR students.student_id ILIKE ?",
				like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var students []*models.Student
	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	err := query.
		Preload("User").
		Preload("Course").
		Find(&students).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	return students, total, nil
}

func (r *StudentPostgreSQL) ListAll(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Order("students.id ASC").
		Find(&students).Error
	if err != nil {
		return nil, translateError(err)
	}
	return students, nil
}
