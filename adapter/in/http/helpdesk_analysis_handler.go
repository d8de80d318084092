package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"helpdesk_server/core/domain"
	in "helpdesk_server/core/port/in"
)

// AnalysisHandler exposes the enrichment pipeline directly, without creating
// a ticket. The dashboard uses it for ad-hoc triage previews.
type AnalysisHandler struct {
	service in.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(service in.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Register registers analysis routes
func (h *AnalysisHandler) Register(router fiber.Router) {
	router.Post("/analyze", h.Analyze)
}

type analyzeRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

// Analyze runs enrichment over raw text
// @Summary Analyze text
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body analyzeRequest true "Text to analyze"
// @Success 200 {object} domain.EnrichmentRecord
// @Router /api/v1/analyze [post]
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return ErrorResponse(c, 400, "text is required")
	}

	priority := domain.Priority(req.Priority)
	if req.Priority != "" && !domain.IsValidPriority(priority) {
		return ErrorResponse(c, 400, "invalid priority")
	}

	record := h.service.Analyze(c.Context(), text, priority)
	return SuccessResponse(c, record)
}
