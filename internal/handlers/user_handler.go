package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/services"
	"github.com/SAP-F-2025/academic-records-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	accounts services.AccountService
	users    services.UserService
}

func NewUserHandler(accounts services.AccountService, users services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		accounts:    accounts,
		users:       users,
	}
}

// ===== USER ENDPOINTS =====

// Register creates a new account with a role profile
// @Summary Register a user
// @Description Self-register an active account as a teacher or a student
// @Tags users
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration details"
// @Success 201 {object} models.LoginResponse
// @Failure 400 {object} ErrorResponse "Validation failed or username, email or phone already taken"
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering user", "username", req.Username, "role", req.Role)

	resp, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetMe returns the authenticated user's own account
// @Summary Get current user
// @Description Get the account of the authenticated caller
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers lists accounts with optional filtering
// @Summary List users
// @Description Get a paginated list of accounts, optionally filtered by role or activity
// @Tags users
// @Produce json
// @Param page query int false "Page number (default: 0)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param q query string false "Search query (username, name or email)"
// @Param role query string false "Filter by role (student, teacher, staff, admin)"
// @Param is_active query bool false "Filter by activity flag"
// @Success 200 {object} models.PaginatedResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	params := h.parseListParams(c)

	var role *models.UserRole
	if roleStr := c.Query("role"); roleStr != "" {
		r := models.UserRole(roleStr)
		switch r {
		case models.RoleStudent, models.RoleTeacher, models.RoleStaff, models.RoleAdmin:
			role = &r
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Unknown role filter",
				Details: roleStr,
			})
			return
		}
	}

	var isActive *bool
	if activeStr := c.Query("is_active"); activeStr != "" {
		active := activeStr == "true"
		isActive = &active
	}

	resp, err := h.users.List(c.Request.Context(), params, role, isActive)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUser retrieves an account by ID
// @Summary Get user by ID
// @Description Get account information by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial account update
// @Summary Update user
// @Description Update account fields, including role and activity flags
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body services.UserUpdateRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse "Validation failed or email or phone already taken"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req services.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating user", "user_id", id)

	user, err := h.users.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account and its role profiles
// @Summary Delete user
// @Description Delete an account; role profiles go with it
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting user", "user_id", id)

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
