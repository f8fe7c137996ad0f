package services

import (
	"errors"

	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
)

// Service-level sentinel errors. Handlers map these onto HTTP status codes.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("access denied")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is not active")

	// Activation and password changes
	ErrAccountNotFound  = errors.New("no account found for this email")
	ErrAlreadyActive    = errors.New("account is already active")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrSamePassword     = errors.New("new password must differ from the current one")

	// Uniqueness conflicts, surfaced from database constraints
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrDuplicateEmail     = errors.New("email is already in use")
	ErrDuplicatePhone     = errors.New("phone number is already in use")
	ErrDuplicateStudentID = errors.New("student id is already in use")
	ErrDuplicateProfile   = errors.New("user already has a profile for this role")
)

// translateRepositoryError maps repository sentinels onto service sentinels.
// Unknown errors pass through untouched so callers can wrap them.
func translateRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrDuplicateUsername):
		return ErrDuplicateUsername
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return ErrDuplicateEmail
	case errors.Is(err, repositories.ErrDuplicatePhone):
		return ErrDuplicatePhone
	case errors.Is(err, repositories.ErrDuplicateStudentID):
		return ErrDuplicateStudentID
	case errors.Is(err, repositories.ErrDuplicateProfile):
		return ErrDuplicateProfile
	default:
		return err
	}
}
