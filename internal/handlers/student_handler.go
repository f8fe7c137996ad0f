package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/academic-records-service/internal/services"
	"github.com/SAP-F-2025/academic-records-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== STUDENT ENDPOINTS =====

// ProvisionStudent creates an inactive student account
// @Summary Provision student
// @Description Create a student record with an inactive account holding the default password; the owner activates it later
// @Tags students
// @Accept json
// @Produce json
// @Param request body services.StudentCreateRequest true "Student details"
// @Success 201 {object} models.ProvisionStudentResponse
// @Failure 400 {object} ErrorResponse "Validation failed or username, email or student ID already taken"
// @Router /students [post]
func (h *StudentHandler) ProvisionStudent(c *gin.Context) {
	var req services.StudentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Provisioning student", "username", req.User.Username, "student_id", req.StudentID)

	resp, err := h.service.Provision(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListStudents lists student records
// @Summary List students
// @Description Get a paginated list of student records
// @Tags students
// @Produce json
// @Param page query int false "Page number (default: 0)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param q query string false "Search query (name, username or student ID)"
// @Success 200 {object} models.PaginatedResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), h.parseListParams(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStudent retrieves a student record by ID
// @Summary Get student
// @Description Get a student record with its user and course
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	student, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// UpdateStudent applies a partial record update
// @Summary Update student
// @Description Update student record fields
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body services.StudentUpdateRequest true "Fields to update"
// @Success 200 {object} models.Student
// @Failure 400 {object} ErrorResponse "Validation failed or student ID already taken"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req services.StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating student", "student_id", id)

	student, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student record
// @Summary Delete student
// @Description Delete a student record; the owning user account stays
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting student", "student_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted"})
}

// ExportStudents downloads the full roster as a workbook
// @Summary Export student roster
// @Description Download every student record as an xlsx workbook
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "xlsx workbook"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/export [get]
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	h.LogRequest(c, "Exporting student roster")

	data, err := h.service.ExportRoster(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("students-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
