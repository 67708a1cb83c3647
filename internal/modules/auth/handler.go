package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reclamation/internal/middleware"
	"reclamation/internal/pkg/response"
	"reclamation/internal/pkg/validator"
)

const forgotMessage = "If the email is registered, a reset link has been sent"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	validator.Engine()
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the token endpoints. limit guards the ones
// that accept guesses or send mail.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, limit gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/forgot-password", limit, h.ForgotPassword)
		auth.POST("/reset-password/:token", limit, h.ResetPassword)
		auth.GET("/verify-email/:token", limit, h.VerifyEmail)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/auth/send-verification", h.SendVerification)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": forgotMessage})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password has been reset"})
}

func (h *Handler) SendVerification(c *gin.Context) {
	if err := h.service.SendVerification(c.Request.Context(), middleware.UserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Verification email sent"})
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	if err := h.service.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Email verified"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrInvalidToken):
		response.Error(c, http.StatusBadRequest, "INVALID_TOKEN", "Token is invalid or has expired")
	case errors.Is(err, ErrAlreadyVerified):
		response.Error(c, http.StatusBadRequest, "ALREADY_VERIFIED", "Email is already verified")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrMailFailed):
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "EMAIL_SEND_FAILED", "Could not send email")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication operation failed")
	}
}
