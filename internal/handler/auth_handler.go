package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BobadilloLeftLane/medweg-api/internal/middleware"
	"github.com/BobadilloLeftLane/medweg-api/internal/service"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// AuthHandler exposes institution, worker and admin authentication
// endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	adminAuth    *service.AdminAuthService
	loginLimiter *middleware.InvalidAuthRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, adminAuth *service.AdminAuthService, loginLimiter *middleware.InvalidAuthRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, adminAuth: adminAuth, loginLimiter: loginLimiter}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	inst, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrEmailTaken) {
			utils.Error(c, 409, "EMAIL_TAKEN", "An account with this email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to register institution")
		return
	}

	utils.Success(c, 201, "Institution registered, verification code sent", inst)
}

// Verify handles POST /v1/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required,len=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.authService.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
		if errors.Is(err, utils.ErrInvalidVerification) {
			utils.Error(c, 400, "INVALID_VERIFICATION_CODE", "Verification code is invalid or expired")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Verification failed")
		return
	}

	utils.Success(c, 200, "Account verified", nil)
}

// ResendVerification handles POST /v1/auth/verify/resend
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		// Do not reveal whether the email exists.
		utils.Success(c, 200, "If the account exists, a new code was sent", nil)
		return
	}
	utils.Success(c, 200, "If the account exists, a new code was sent", nil)
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.loginLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed attempts, try again later")
		return
	}

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.loginLimiter.Record(c.ClientIP())
		writeAuthError(c, err)
		return
	}

	utils.Success(c, 200, "Login successful", pair)
}

// WorkerLogin handles POST /v1/auth/worker-login
func (h *AuthHandler) WorkerLogin(c *gin.Context) {
	if !h.loginLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed attempts, try again later")
		return
	}

	var req struct {
		LoginKey string `json:"loginKey" binding:"required"`
		Secret   string `json:"secret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	pair, err := h.authService.WorkerLogin(c.Request.Context(), req.LoginKey, req.Secret)
	if err != nil {
		h.loginLimiter.Record(c.ClientIP())
		writeAuthError(c, err)
		return
	}

	utils.Success(c, 200, "Login successful", pair)
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.Error(c, 401, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
		return
	}

	utils.Success(c, 200, "Token refreshed", pair)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Logout failed")
		return
	}
	utils.Success(c, 200, "Logged out", nil)
}

// AdminLogin handles POST /v1/admin/auth/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	if !h.loginLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed attempts, try again later")
		return
	}

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, err := h.adminAuth.Login(req.Email, req.Password)
	if err != nil {
		h.loginLimiter.Record(c.ClientIP())
		writeAuthError(c, err)
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
	})
}

func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrAccountInactive):
		utils.Error(c, 403, "ACCOUNT_INACTIVE", "Account is inactive")
	case errors.Is(err, utils.ErrAccountNotVerified):
		utils.Error(c, 403, "ACCOUNT_NOT_VERIFIED", "Account email is not verified")
	default:
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid credentials")
	}
}
