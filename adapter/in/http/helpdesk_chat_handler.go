package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	in "helpdesk_server/core/port/in"
)

// ChatHandler handles HTTP requests for the chat widget
type ChatHandler struct {
	service in.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service in.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Register registers chat routes
func (h *ChatHandler) Register(router fiber.Router) {
	chat := router.Group("/chat")
	chat.Post("/message", h.Message)
	chat.Get("/:session_id/history", h.History)
}

// chatMessageRequest is the chat widget message payload. A missing session_id
// starts a new session.
type chatMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Message handles one chat widget message
// @Summary Send a chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body chatMessageRequest true "Chat message"
// @Success 200 {object} in.ChatTurn
// @Router /api/v1/chat/message [post]
func (h *ChatHandler) Message(c *fiber.Ctx) error {
	var req chatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	turn, err := h.service.HandleMessage(c.Context(), req.SessionID, req.Message)
	if err != nil {
		return AppErrorResponse(c, err)
	}

	return SuccessResponse(c, fiber.Map{
		"session_id":  req.SessionID,
		"reply":       turn.Reply,
		"suggestions": turn.Suggestions,
		"enrichment":  turn.Enrichment,
	})
}

// History returns recent transcript lines for a session
// @Summary Get chat history
// @Tags Chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Param limit query int false "Lines to return (default 20)"
// @Success 200 {object} APIResponse
// @Router /api/v1/chat/{session_id}/history [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	limit := c.QueryInt("limit", 20)

	lines, err := h.service.History(c.Context(), sessionID, int64(limit))
	if err != nil {
		return AppErrorResponse(c, err)
	}
	if lines == nil {
		lines = []string{}
	}

	return SuccessResponse(c, fiber.Map{
		"session_id": sessionID,
		"messages":   lines,
	})
}
