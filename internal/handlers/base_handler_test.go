package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/academic-records-service/internal/security"
	"github.com/SAP-F-2025/academic-records-service/internal/services"
	"github.com/SAP-F-2025/academic-records-service/internal/utils"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

func callHandleServiceError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h := NewBaseHandler(utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	h.handleServiceError(c, err)

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return w, resp
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusBadRequest},
		{"password mismatch", services.ErrPasswordMismatch, http.StatusBadRequest},
		{"same password", services.ErrSamePassword, http.StatusBadRequest},
		{"already active", services.ErrAlreadyActive, http.StatusBadRequest},
		{"duplicate username", services.ErrDuplicateUsername, http.StatusBadRequest},
		{"duplicate email", services.ErrDuplicateEmail, http.StatusBadRequest},
		{"duplicate phone", services.ErrDuplicatePhone, http.StatusBadRequest},
		{"duplicate student id", services.ErrDuplicateStudentID, http.StatusBadRequest},
		{"duplicate profile", services.ErrDuplicateProfile, http.StatusBadRequest},
		{"expired token", security.ErrTokenExpired, http.StatusUnauthorized},
		{"invalid token", security.ErrTokenInvalid, http.StatusUnauthorized},
		{"inactive account", services.ErrAccountInactive, http.StatusForbidden},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"account not found", services.ErrAccountNotFound, http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := callHandleServiceError(t, tt.err)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestHandleServiceError_DuplicateDetails(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
	}{
		{"duplicate username", services.ErrDuplicateUsername, "username"},
		{"duplicate email", services.ErrDuplicateEmail, "email"},
		{"duplicate phone", services.ErrDuplicatePhone, "phone_number"},
		{"duplicate student id", services.ErrDuplicateStudentID, "student_id"},
		{"duplicate profile", services.ErrDuplicateProfile, "user_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := callHandleServiceError(t, tt.err)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if resp.Message != "Validation failed" {
				t.Errorf("message = %q, want %q", resp.Message, "Validation failed")
			}

			raw, err := json.Marshal(resp.Details)
			if err != nil {
				t.Fatalf("marshal details: %v", err)
			}
			var details validator.ValidationErrors
			if err := json.Unmarshal(raw, &details); err != nil {
				t.Fatalf("unmarshal details: %v", err)
			}
			if len(details) != 1 {
				t.Fatalf("details length = %d, want 1", len(details))
			}
			if details[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", details[0].Field, tt.wantField)
			}
			if details[0].Rule != "unique" {
				t.Errorf("rule = %q, want %q", details[0].Rule, "unique")
			}
		})
	}
}

func TestHandleServiceError_ValidationErrors(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "username", Message: "is required", Rule: "required"},
	}

	w, resp := callHandleServiceError(t, errs)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp.Message != "Validation failed" {
		t.Errorf("message = %q, want %q", resp.Message, "Validation failed")
	}
}
