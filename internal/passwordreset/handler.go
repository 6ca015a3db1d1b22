package passwordreset

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gide-backend/internal/shared/server/respond"
	"gide-backend/internal/users"
)

// Handler wires HTTP handlers to the reset-code service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches password reset routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/password-reset/forgot", h.forgot)
	rg.POST("/password-reset/reset", h.reset)
}

type forgotRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) forgot(c *gin.Context) {
	var req forgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "a valid email is required", nil)
		return
	}

	if _, err := h.Svc.IssueCode(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "user_not_found", "User not found", nil)
		case errors.Is(err, ErrDeliveryFailed):
			respond.Error(c, http.StatusBadGateway, "delivery_failed", "Failed to send reset email", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue reset code", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "Reset code sent to your email."})
}

type resetRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *Handler) reset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email, 6-digit code and new_password (min 8 chars) are required", nil)
		return
	}

	if err := h.Svc.ConsumeAndReset(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "user_not_found", "User not found", nil)
		case errors.Is(err, ErrInvalidOrExpiredCode):
			respond.Error(c, http.StatusBadRequest, "invalid_or_expired_code", "Invalid or expired reset code.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reset password", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "Password has been reset successfully."})
}
