package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/security"
	"github.com/SAP-F-2025/academic-records-service/internal/services"
	"github.com/SAP-F-2025/academic-records-service/internal/utils"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

// ErrorResponse is the uniform error payload for every endpoint
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the shared handler plumbing: request-scoped logging
// and the service error to HTTP status mapping.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs the start of handler work with request context attached
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context()).Info(msg, args...)
}

// LogError logs a handler failure with request context attached
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c.Request.Context()).Error(msg, args...)
}

// parseIDParam reads the :id path parameter. On failure it writes the 400
// response and returns false.
func (h *BaseHandler) parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid ID parameter",
			Details: idStr,
		})
		return 0, false
	}
	return uint(id), true
}

// parseListParams reads the shared pagination and search query parameters
func (h *BaseHandler) parseListParams(c *gin.Context) models.ListParams {
	params := models.ListParams{
		Page:    0,
		Size:    20,
		Search:  c.Query("q"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.DefaultQuery("sort_dir", "asc"),
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 0 {
			params.Page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			params.Size = s
		}
	}

	return params
}

// handleServiceError maps service errors to HTTP status codes.
// 401 is reserved for token failures; credential and uniqueness errors
// come back as 400 like any other validation failure.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	if field, message, ok := duplicateField(err); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validator.ValidationErrors{{Field: field, Message: message, Rule: "unique"}},
		})
		return
	}

	switch {
	case errors.Is(err, security.ErrTokenExpired),
		errors.Is(err, security.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAlreadyActive),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrSamePassword):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: err.Error(),
		})
	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}

// duplicateField names the conflicting field for a uniqueness violation so
// the response carries a field-scoped validation error.
func duplicateField(err error) (field, message string, ok bool) {
	switch {
	case errors.Is(err, services.ErrDuplicateUsername):
		return "username", "is already taken", true
	case errors.Is(err, services.ErrDuplicateEmail):
		return "email", "is already taken", true
	case errors.Is(err, services.ErrDuplicatePhone):
		return "phone_number", "is already taken", true
	case errors.Is(err, services.ErrDuplicateStudentID):
		return "student_id", "is already taken", true
	case errors.Is(err, services.ErrDuplicateProfile):
		return "user_id", "already has this profile", true
	}
	return "", "", false
}
