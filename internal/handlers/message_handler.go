package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/apperror"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"github.com/watchrebel/backend/internal/ws"
)

// MessageHandler handles direct message HTTP requests
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	hub               *ws.Hub
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
		hub:               hub,
	}
}

// RegisterMessageRoutes registers direct message routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/conversations", h.GetConversations)
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/:user_id", h.GetConversation)
	g.PUT("/messages/:user_id/read", h.MarkConversationRead)
}

// SendMessage persists a message and pushes it to the recipient's open
// WebSocket connections when online.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	sender := getUserFromContext(c)
	if !sender.CanPost(time.Now()) {
		return respondError(c, apperror.Forbidden(apperror.CodePostBanned, "posting is suspended until "+sender.PostBanUntil.Format(time.RFC3339)))
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.RecipientID == sender.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}
	if _, err := h.userRepository.GetUserByID(req.RecipientID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Recipient not found")
	}

	message := &models.Message{
		SenderID:    sender.ID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}
	if err := h.messageRepository.CreateMessage(message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.hub != nil && h.hub.IsOnline(req.RecipientID) {
		h.hub.Push(req.RecipientID, echo.Map{"type": "message", "data": message})
	}

	return c.JSON(http.StatusCreated, message)
}

// GetConversation returns the message history with one peer
func (h *MessageHandler) GetConversation(c echo.Context) error {
	peerID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	page, limit := parsePagination(c)
	messages, total, err := h.messageRepository.GetConversation(getUserIDFromContext(c), uint(peerID), page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"messages":    messages,
		"total":       total,
		"page":        page,
		"total_pages": int(math.Ceil(float64(total) / float64(limit))),
	})
}

// GetConversations lists conversation summaries, most recent first
func (h *MessageHandler) GetConversations(c echo.Context) error {
	conversations, err := h.messageRepository.GetConversations(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"conversations": conversations})
}

// MarkConversationRead marks all messages from a peer as read
func (h *MessageHandler) MarkConversationRead(c echo.Context) error {
	peerID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if err := h.messageRepository.MarkConversationRead(getUserIDFromContext(c), uint(peerID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
