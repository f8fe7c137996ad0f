package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
)

const uniqueViolationCode = "23505"

// translateError maps driver errors to the repository sentinel errors.
// Uniqueness is decided here, from the constraint that fired at write time,
// so concurrent inserts can never both pass a pre-check.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case "uq_users_username":
			return repositories.ErrDuplicateUsername
		case "uq_users_email":
			return repositories.ErrDuplicateEmail
		case "uq_users_phone":
			return repositories.ErrDuplicatePhone
		case "uq_students_student_id":
			return repositories.ErrDuplicateStudentID
		case "uq_teachers_user", "uq_students_user":
			return repositories.ErrDuplicateProfile
		default:
			return repositories.ErrDuplicate
		}
	}

	return err
}

// applyPaginationAndSort applies pagination and sorting with a column whitelist
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	allowedSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"id":         true,
		"title":      true,
		"username":   true,
		"student_id": true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
