package resumes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gide-backend/internal/ai"
	"gide-backend/internal/extract"
	"gide-backend/internal/shared/metrics"
	"gide-backend/internal/shared/server/middleware"
	"gide-backend/internal/shared/server/respond"
)

const maxImportBytes = 10 << 20

// Handler wires HTTP handlers to the version ledger and the AI client.
type Handler struct {
	Svc *Service
	AI  ai.Client
}

func NewHandler(svc *Service, aiClient ai.Client) *Handler {
	return &Handler{Svc: svc, AI: aiClient}
}

// RegisterRoutes attaches resume routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.createVersion)
	rg.GET("/resume", h.listVersions)
	rg.POST("/resume/import", h.importPDF)
	rg.POST("/resume/ai-suggest", h.aiSuggest)
}

type createResumeRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) createVersion(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content is required", nil)
		return
	}

	resume, err := h.Svc.CreateVersion(c.Request.Context(), userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "content is required", nil)
		case errors.Is(err, ErrVersionConflict):
			respond.Error(c, http.StatusConflict, "version_conflict", "concurrent update, please retry", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
		}
		return
	}

	respond.OK(c, toResumeResponse(resume))
}

func (h *Handler) listVersions(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	list, err := h.Svc.ListVersions(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.OK(c, toResumeResponses(list))
}

func (h *Handler) importPDF(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart field 'file' is required", nil)
		return
	}
	if fileHeader.Size > maxImportBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return
	}
	defer file.Close()

	text, err := extract.TextFromReader(c.Request.Context(), file, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not extract text from the uploaded PDF", nil)
		return
	}

	resume, err := h.Svc.CreateVersion(c.Request.Context(), userID, text)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
		return
	}
	respond.OK(c, toResumeResponse(resume))
}

type aiSuggestRequest struct {
	Name       string `json:"name" binding:"required"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
	Location   string `json:"location"`
}

func (h *Handler) aiSuggest(c *gin.Context) {
	var req aiSuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}

	start := time.Now()
	summary, err := h.AI.GenerateSummary(c.Request.Context(), ai.SummaryInput{
		Name:       req.Name,
		Education:  req.Education,
		Experience: req.Experience,
		Skills:     req.Skills,
		Location:   req.Location,
	})
	metrics.ObserveSummaryDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncSummaryFailed()
		switch {
		case errors.Is(err, ai.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "ai_not_configured", "AI provider not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "AI service error", nil)
		}
		return
	}
	metrics.IncSummaryGenerated()

	respond.OK(c, gin.H{"summary": summary})
}
