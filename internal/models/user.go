package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleStaff   UserRole = "staff"
	RoleAdmin   UserRole = "admin"
)

// User is the credential record. Username is the canonical login key;
// email and phone number are optional but unique when present.
type User struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Username    string  `json:"username" gorm:"uniqueIndex:uq_users_username;not null;size:150"`
	Email       *string `json:"email" gorm:"uniqueIndex:uq_users_email;size:255"`
	FirstName   string  `json:"first_name" gorm:"size:150"`
	LastName    string  `json:"last_name" gorm:"size:150"`
	PhoneNumber *string `json:"phone_number" gorm:"uniqueIndex:uq_users_phone;size:15"`

	// Role flags are not mutually exclusive
	IsActive  bool `json:"is_active" gorm:"default:true"`
	IsStaff   bool `json:"is_staff" gorm:"default:false"`
	IsAdmin   bool `json:"is_admin" gorm:"default:false"`
	IsTeacher bool `json:"is_teacher" gorm:"default:false"`
	IsStudent bool `json:"is_student" gorm:"default:false"`

	PasswordHash string `json:"-" gorm:"column:password_hash;not null;size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Roles expands the role flags into the role list carried by access tokens.
func (u *User) Roles() []UserRole {
	var roles []UserRole
	if u.IsAdmin {
		roles = append(roles, RoleAdmin)
	}
	if u.IsStaff {
		roles = append(roles, RoleStaff)
	}
	if u.IsTeacher {
		roles = append(roles, RoleTeacher)
	}
	if u.IsStudent {
		roles = append(roles, RoleStudent)
	}
	return roles
}

// HasRole reports whether the user carries the given role flag.
func (u *User) HasRole(role UserRole) bool {
	switch role {
	case RoleAdmin:
		return u.IsAdmin
	case RoleStaff:
		return u.IsStaff
	case RoleTeacher:
		return u.IsTeacher
	case RoleStudent:
		return u.IsStudent
	default:
		return false
	}
}
