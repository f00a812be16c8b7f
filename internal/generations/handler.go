package generations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uigen-backend/internal/shared/server/respond"
)

const defaultHistoryLimit = 50

// Handler exposes the generation pipeline over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the pipeline endpoint.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/generate", h.generate)
}

// RegisterHistoryRoutes attaches the run-history read surface.
func (h *Handler) RegisterHistoryRoutes(rg *gin.RouterGroup) {
	rg.GET("/generations", h.listGenerations)
	rg.GET("/generations/:id", h.getGeneration)
}

func (h *Handler) generate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	req, err := ParseRequest(body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	out, rec, err := h.Svc.Generate(c.Request.Context(), req)
	c.Set("generationId", rec.ID)
	c.Set("repairAttempted", rec.Repaired)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	respond.OK(c, out)
}

func (h *Handler) listGenerations(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	records, err := h.Svc.Repo.List(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to list generations")
		return
	}
	if records == nil {
		records = []Record{}
	}
	respond.OK(c, gin.H{"generations": records})
}

func (h *Handler) getGeneration(c *gin.Context) {
	rec, err := h.Svc.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "generation not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "failed to fetch generation")
		return
	}
	respond.OK(c, rec)
}
