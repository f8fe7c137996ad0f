package models

import "time"

// ===== ACADEMIC REFERENCE DATA =====

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:50"`
	Description *string `json:"description" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

type Department struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:50"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
	Description *string `json:"description" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

// ===== SCHEDULE REFERENCE DATA =====

type Day struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"not null;size:50"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Day) TableName() string {
	return "days"
}

type Room struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"not null;size:50"`
	Capacity *int   `json:"capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Room) TableName() string {
	return "rooms"
}

type TableType struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"not null;size:50"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TableType) TableName() string {
	return "table_types"
}

// Table is a timetable slot tying a course, teacher, room and day together.
type Table struct {
	ID uint `json:"id" gorm:"primaryKey"`

	CourseID  *uint      `json:"course_id"`
	Course    *Course    `json:"course,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	TeacherID *uint      `json:"teacher_id"`
	Teacher   *Teacher   `json:"teacher,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	RoomID    *uint      `json:"room_id"`
	Room      *Room      `json:"room,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	DayID     *uint      `json:"day_id"`
	Day       *Day       `json:"day,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	TypeID    *uint      `json:"type_id"`
	Type      *TableType `json:"type,omitempty" gorm:"constraint:OnDelete:SET NULL"`

	StartTime *string `json:"start_time" gorm:"size:10"`
	EndTime   *string `json:"end_time" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Table) TableName() string {
	return "tables"
}

// GroupStudent assigns a student to a timetable group.
type GroupStudent struct {
	ID uint `json:"id" gorm:"primaryKey"`

	TableID   *uint    `json:"table_id"`
	Table     *Table   `json:"table,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	StudentID *uint    `json:"student_id"`
	Student   *Student `json:"student,omitempty" gorm:"constraint:OnDelete:SET NULL"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GroupStudent) TableName() string {
	return "group_students"
}
