package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gide-backend/internal/shared/server/respond"
	"gide-backend/internal/users"
)

// Handler wires HTTP handlers to the auth service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches registration and sign-in routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/google-signin", h.googleSignIn)
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "a valid email and password (min 8 chars) are required", nil)
		return
	}

	user, err := h.Svc.Users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrDuplicateEmail):
			respond.Error(c, http.StatusBadRequest, "duplicate_email", "Email already registered", nil)
		case errors.Is(err, users.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid email or password", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		return
	}

	_, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
		return
	}

	respond.OK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

type googleSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

func (h *Handler) googleSignIn(c *gin.Context) {
	var req googleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id_token is required", nil)
		return
	}

	user, token, err := h.Svc.SignInWithIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingEmailClaim):
			respond.Error(c, http.StatusUnauthorized, "missing_email_claim", "identity assertion carries no email", nil)
		case errors.Is(err, ErrInvalidAssertion):
			respond.Error(c, http.StatusUnauthorized, "invalid_assertion", "invalid identity assertion", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
		"access_token": token,
		"token_type":   "bearer",
	})
}
