package models

import (
	"time"

	"gorm.io/datatypes"
)

// Teacher is the 1:1 role profile for users with the teacher flag.
// Deleting the owning user cascades; deleting the department nulls the reference.
type Teacher struct {
	ID     uint  `json:"id" gorm:"primaryKey"`
	UserID uint  `json:"user_id" gorm:"uniqueIndex:uq_teachers_user;not null"`
	User   *User `json:"user,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	DepartmentID *uint       `json:"department_id"`
	Department   *Department `json:"department,omitempty" gorm:"constraint:OnDelete:SET NULL"`

	Bio            *string `json:"bio" gorm:"type:text"`
	Specialization *string `json:"specialization" gorm:"size:200"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// Student is the 1:1 role profile for users with the student flag.
type Student struct {
	ID     uint  `json:"id" gorm:"primaryKey"`
	UserID uint  `json:"user_id" gorm:"uniqueIndex:uq_students_user;not null"`
	User   *User `json:"user,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	CourseID *uint   `json:"course_id"`
	Course   *Course `json:"course,omitempty" gorm:"constraint:OnDelete:SET NULL"`

	StudentID      string          `json:"student_id" gorm:"column:student_id;uniqueIndex:uq_students_student_id;not null;size:50"`
	EnrollmentDate *datatypes.Date `json:"enrollment_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
