package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gide-backend/internal/resumes"
	"gide-backend/internal/shared/server/middleware"
	"gide-backend/internal/shared/server/respond"
	"gide-backend/internal/users"
)

// Handler serves the signed-in user's dashboard snapshot.
type Handler struct {
	Users   *users.Service
	Resumes *resumes.Service
}

func NewHandler(usersSvc *users.Service, resumesSvc *resumes.Service) *Handler {
	return &Handler{Users: usersSvc, Resumes: resumesSvc}
}

// RegisterRoutes attaches dashboard routes to an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.show)
}

func (h *Handler) show(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	ctx := c.Request.Context()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "user_not_found", "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		return
	}

	versions, err := h.Resumes.ListVersions(ctx, userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		return
	}

	entries := make([]gin.H, 0, len(versions))
	for _, r := range versions {
		entries = append(entries, gin.H{
			"id":         r.ID,
			"version":    r.Version,
			"created_at": r.CreatedAt,
		})
	}

	respond.OK(c, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
		"resume_count":    len(versions),
		"resume_versions": entries,
	})
}
