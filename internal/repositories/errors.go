package repositories

import "errors"

// Storage-level sentinel errors. Uniqueness violations are detected at write
// time from the database constraint, never by a pre-check.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("duplicate record")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicatePhone     = errors.New("phone number already exists")
	ErrDuplicateStudentID = errors.New("student id already exists")
	ErrDuplicateProfile   = errors.New("user already has a profile")
)
