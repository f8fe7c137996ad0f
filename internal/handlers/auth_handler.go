package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/academic-records-service/internal/services"
	"github.com/SAP-F-2025/academic-records-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AccountService
}

func NewAuthHandler(service services.AccountService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== AUTH ENDPOINTS =====

// Login authenticates a user by username and password
// @Summary Log in
// @Description Authenticate with username and password and receive an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} ErrorResponse "Bad request or invalid credentials"
// @Failure 403 {object} ErrorResponse "Account not active"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Login attempt", "username", req.Username)

	resp, err := h.service.Authenticate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshToken exchanges a refresh token for a new access token
// @Summary Refresh access token
// @Description Mint a new access token from a valid refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} map[string]string "New access token"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req services.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	access, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

// VerifyToken checks whether a token is valid
// @Summary Verify token
// @Description Verify a token of either use and return its claims
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.VerifyTokenRequest true "Token to verify"
// @Success 200 {object} map[string]interface{} "Token claims"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Invalid or expired token"
// @Router /auth/verify [post]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req services.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	claims, err := h.service.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"user_id":  claims.UserID,
		"username": claims.Username,
		"roles":    claims.Roles,
	})
}

// ActivateAccount activates a provisioned account
// @Summary Activate account
// @Description Activate a provisioned account by proving the temporary password and setting a new one
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.ActivateAccountRequest true "Activation details"
// @Success 200 {object} models.ActivationResponse
// @Failure 400 {object} ErrorResponse "Bad request or wrong temporary password"
// @Failure 404 {object} ErrorResponse "No account for this email"
// @Router /auth/activate [post]
func (h *AuthHandler) ActivateAccount(c *gin.Context) {
	var req services.ActivateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Account activation attempt", "email", req.Email)

	resp, err := h.service.ActivateAccount(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ChangePassword changes the authenticated user's password
// @Summary Change password
// @Description Change the caller's password after verifying the current one
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.ChangePasswordRequest true "Password change details"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse "Bad request or wrong current password"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Password change", "user_id", userID)

	if err := h.service.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
