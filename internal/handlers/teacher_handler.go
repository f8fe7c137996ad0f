package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/academic-records-service/internal/services"
	"github.com/SAP-F-2025/academic-records-service/internal/utils"
)

type TeacherHandler struct {
	BaseHandler
	service services.TeacherService
}

func NewTeacherHandler(service services.TeacherService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== TEACHER ENDPOINTS =====

// CreateTeacher creates a teacher account with profile
// @Summary Create teacher
// @Description Create an active teacher account together with its profile
// @Tags teachers
// @Accept json
// @Produce json
// @Param request body services.TeacherCreateRequest true "Teacher details"
// @Success 201 {object} models.Teacher
// @Failure 400 {object} ErrorResponse "Validation failed or username or email already taken"
// @Router /teachers [post]
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req services.TeacherCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating teacher", "username", req.User.Username)

	teacher, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, teacher)
}

// ListTeachers lists teacher profiles
// @Summary List teachers
// @Description Get a paginated list of teacher profiles
// @Tags teachers
// @Produce json
// @Param page query int false "Page number (default: 0)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param q query string false "Search query (name, username or specialization)"
// @Success 200 {object} models.PaginatedResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /teachers [get]
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), h.parseListParams(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTeacher retrieves a teacher profile by ID
// @Summary Get teacher
// @Description Get a teacher profile with its user and department
// @Tags teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /teachers/{id} [get]
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	teacher, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// UpdateTeacher applies a partial profile update
// @Summary Update teacher
// @Description Update teacher profile fields
// @Tags teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param request body services.TeacherUpdateRequest true "Fields to update"
// @Success 200 {object} models.Teacher
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /teachers/{id} [put]
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req services.TeacherUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating teacher", "teacher_id", id)

	teacher, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// DeleteTeacher removes a teacher profile
// @Summary Delete teacher
// @Description Delete a teacher profile; the owning user account stays
// @Tags teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting teacher", "teacher_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Teacher deleted"})
}
