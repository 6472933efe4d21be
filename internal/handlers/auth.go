package handlers

import (
	"context"
	"time"

	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/otp"
	"clinic-booking-server/internal/security"
	"clinic-booking-server/internal/services"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthService is what AuthHandler needs from the authentication service.
type AuthService interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.AccountResponse, error)
	Login(ctx context.Context, req services.LoginRequest) (*models.AccountResponse, error)
	GetCurrentAccount(ctx context.Context, principal security.Principal) (*models.AccountResponse, error)
	ChangePassword(ctx context.Context, principal security.Principal, req services.ChangePasswordRequest) error
	SendResetPasswordOtp(ctx context.Context, phone string) (otp.Entry, error)
	ResetPassword(ctx context.Context, req services.ResetPasswordRequest) error
}

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	auth AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles account registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return // Error response handled by BindAndValidate
	}

	account, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Created(c, "Account registered successfully", account)
}

// Login handles account login. The username is the phone number.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	account, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Login successful", account)
}

// GetProfile handles fetching the currently authenticated account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	account, err := h.auth.GetCurrentAccount(c.Request.Context(), principal)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Profile fetched successfully", account)
}

// ChangePassword handles a password change by the authenticated account.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req services.ChangePasswordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), principal, req); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Password changed successfully", nil)
}

// ForgotPasswordResponse tells the client when the code stops working. The
// code itself only travels by SMS.
type ForgotPasswordResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ForgotPassword sends a reset code to the phone.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry, err := h.auth.SendResetPasswordOtp(c.Request.Context(), req.Phone)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "OTP sent successfully", ForgotPasswordResponse{
		Phone:     req.Phone,
		ExpiresAt: entry.ExpiresAt,
	})
}

// ResetPassword sets a new password using a reset code.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Password reset successfully", nil)
}
