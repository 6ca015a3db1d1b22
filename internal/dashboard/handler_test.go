package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"gide-backend/internal/resumes"
	"gide-backend/internal/users"
)

func newTestRouter(t *testing.T, userID int64, usersSvc *users.Service, resumesSvc *resumes.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	NewHandler(usersSvc, resumesSvc).RegisterRoutes(group)
	return r
}

func TestDashboardSnapshot(t *testing.T) {
	ctx := context.Background()
	usersSvc := users.NewService(users.NewMemoryRepo())
	resumesSvc := resumes.NewService(resumes.NewMemoryRepo())

	user, err := usersSvc.Register(ctx, "dash@example.com", "password-1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	for _, content := range []string{"first draft", "second draft"} {
		if _, err := resumesSvc.CreateVersion(ctx, user.ID, content); err != nil {
			t.Fatalf("CreateVersion: %v", err)
		}
	}

	r := newTestRouter(t, user.ID, usersSvc, resumesSvc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var body struct {
		User struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		ResumeCount    int `json:"resume_count"`
		ResumeVersions []struct {
			Version int `json:"version"`
		} `json:"resume_versions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User.ID != user.ID || body.User.Email != "dash@example.com" {
		t.Fatalf("user = %+v", body.User)
	}
	if body.ResumeCount != 2 || len(body.ResumeVersions) != 2 {
		t.Fatalf("resume_count = %d, versions = %d", body.ResumeCount, len(body.ResumeVersions))
	}
	if body.ResumeVersions[0].Version != 2 || body.ResumeVersions[1].Version != 1 {
		t.Fatalf("versions not newest-first: %+v", body.ResumeVersions)
	}
}

func TestDashboardUnknownUser(t *testing.T) {
	usersSvc := users.NewService(users.NewMemoryRepo())
	resumesSvc := resumes.NewService(resumes.NewMemoryRepo())

	r := newTestRouter(t, 42, usersSvc, resumesSvc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
