package recommendations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"picki-backend/internal/quota"
	"picki-backend/internal/shared/server/middleware"
	"picki-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommend", h.recommend)
	rg.GET("/recommend", h.history)
	rg.GET("/recommend/:id", h.get)
}

func (h *Handler) recommend(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_json", "request body is not valid JSON", nil)
		return
	}

	id, result, err := h.Svc.Generate(c.Request.Context(), userID, req)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Missing or invalid fields", vErr.Fields)
		case errors.Is(err, quota.ErrLimitReached):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "You've reached your generation limit.", nil)
		case errors.Is(err, ErrMissingCredential):
			respond.Error(c, http.StatusInternalServerError, "configuration_error", "Missing OpenAI API key", nil)
		case errors.Is(err, ErrGenerationFailed):
			respond.Error(c, http.StatusBadGateway, "generation_failed", "AI generation failed", err.Error())
		case errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusBadGateway, "openai_error", "AI generation failed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		}
		return
	}

	c.Set("recommendationId", id)
	respond.JSON(c, http.StatusOK, gin.H{
		"id":              id,
		"recommendations": result,
		"message":         "Recommendations generated successfully",
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "recommendation id is required", nil)
		return
	}

	rec, err := h.Svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recommendation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recommendation", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"id":              rec.ID,
		"request":         rec.Request,
		"recommendations": rec.Result,
		"createdAt":       rec.CreatedAt,
	})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	recs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list recommendations", nil)
		return
	}

	resp := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		item := gin.H{
			"id":          rec.ID,
			"productType": rec.Request.ProductType,
			"purpose":     rec.Request.Purpose,
			"budget":      rec.Request.Budget,
			"parameters":  rec.Request.Parameters,
			"createdAt":   rec.CreatedAt,
		}
		if rec.Result != nil {
			item["overallConclusion"] = rec.Result.OverallConclusion
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}
