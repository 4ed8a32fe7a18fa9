package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/http/response"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/services"
)

type AnalyticsHandler struct {
	log       *logger.Logger
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(log *logger.Logger, analytics services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:       log.With("handler", "AnalyticsHandler"),
		analytics: analytics,
	}
}

// GET /api/analytics/stats
// Always 200; the service substitutes zeros when the store is unavailable.
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	response.RespondOK(c, h.analytics.Stats(c.Request.Context(), nil))
}

// GET /api/analytics/summary?period=
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analytics.Summarize(c.Request.Context(), nil, c.Query("period"))
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, summary)
}
