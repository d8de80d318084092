package http

import (
	"github.com/gofiber/fiber/v2"

	"helpdesk_server/core/domain"
	in "helpdesk_server/core/port/in"
)

// TicketHandler handles HTTP requests for ticket operations
type TicketHandler struct {
	service in.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(service in.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// Register registers ticket routes. Creation and reads are public; mutation
// routes are expected to sit behind the admin auth middleware applied by the
// caller.
func (h *TicketHandler) Register(public fiber.Router, admin fiber.Router) {
	tickets := public.Group("/tickets")
	tickets.Post("/", h.Create)
	tickets.Get("/", h.List)
	tickets.Get("/stats", h.Stats)
	tickets.Get("/:id", h.Get)

	adminTickets := admin.Group("/tickets")
	adminTickets.Put("/:id", h.Update)
	adminTickets.Delete("/:id", h.Delete)
	adminTickets.Post("/:id/reanalyze", h.Reanalyze)
}

// Create creates a ticket and runs enrichment
// @Summary Create a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param request body in.CreateTicketCommand true "Ticket data"
// @Success 201 {object} domain.Ticket
// @Router /api/v1/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var cmd in.CreateTicketCommand
	if err := c.BodyParser(&cmd); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	ticket, err := h.service.Create(c.Context(), &cmd)
	if err != nil {
		return AppErrorResponse(c, err)
	}

	return CreatedResponse(c, ticket)
}

// Get retrieves a ticket by ID
// @Summary Get a ticket
// @Tags Tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} domain.Ticket
// @Router /api/v1/tickets/{id} [get]
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}

	return SuccessResponse(c, ticket)
}

// List lists tickets with filters
// @Summary List tickets
// @Tags Tickets
// @Produce json
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by predicted category"
// @Param priority query string false "Filter by priority"
// @Param escalated query bool false "Filter by escalation flag"
// @Param limit query int false "Limit (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {object} APIResponse
// @Router /api/v1/tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	pagination := GetPaginationParams(c, 50)

	filter := &domain.TicketFilter{
		Status:    domain.TicketStatus(c.Query("status")),
		Category:  domain.TicketCategory(c.Query("category")),
		Priority:  domain.Priority(c.Query("priority")),
		Escalated: QueryBool(c, "escalated"),
		Limit:     pagination.Limit,
		Offset:    pagination.Offset,
	}

	tickets, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	if tickets == nil {
		tickets = []*domain.Ticket{}
	}

	return SuccessResponse(c, fiber.Map{
		"tickets": tickets,
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// Update updates the admin-mutable ticket fields
// @Summary Update a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body in.UpdateTicketCommand true "Ticket data"
// @Success 200 {object} domain.Ticket
// @Router /api/v1/admin/tickets/{id} [put]
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	var cmd in.UpdateTicketCommand
	if err := c.BodyParser(&cmd); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	ticket, err := h.service.Update(c.Context(), c.Params("id"), &cmd)
	if err != nil {
		return AppErrorResponse(c, err)
	}

	return SuccessResponse(c, ticket)
}

// Delete deletes a ticket
// @Summary Delete a ticket
// @Tags Tickets
// @Param id path string true "Ticket ID"
// @Success 204
// @Router /api/v1/admin/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return AppErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Reanalyze re-runs enrichment over a stored ticket
// @Summary Re-analyze a ticket
// @Tags Tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} domain.Ticket
// @Router /api/v1/admin/tickets/{id}/reanalyze [post]
func (h *TicketHandler) Reanalyze(c *fiber.Ctx) error {
	ticket, err := h.service.Reanalyze(c.Context(), c.Params("id"))
	if err != nil {
		return AppErrorResponse(c, err)
	}

	return SuccessResponse(c, ticket)
}

// Stats returns aggregate ticket statistics
// @Summary Get ticket statistics
// @Tags Tickets
// @Produce json
// @Success 200 {object} domain.TicketStats
// @Router /api/v1/tickets/stats [get]
func (h *TicketHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return AppErrorResponse(c, err)
	}

	return SuccessResponse(c, stats)
}
