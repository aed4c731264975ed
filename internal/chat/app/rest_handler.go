package app

import (
	"errors"
	"fmt"
	"strconv"

	"alumni_network_service/internal/chat/domain"
	"alumni_network_service/internal/chat/repository"
	memberdomain "alumni_network_service/internal/member/domain"
	memberrepo "alumni_network_service/internal/member/repository"
	"alumni_network_service/pkg/logger"
	"alumni_network_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// ChatRestHandler serves the HTTP side of messaging. The websocket is the
// primary channel; these endpoints back the inbox views and let the web
// client send or mark messages without an open socket.
type ChatRestHandler struct {
	messageUC  *MessageUseCase
	memberRepo memberrepo.MemberRepository
}

// NewChatRestHandler create ChatRestHandler
func NewChatRestHandler(messageUC *MessageUseCase, memberRepo memberrepo.MemberRepository) *ChatRestHandler {
	return &ChatRestHandler{
		messageUC:  messageUC,
		memberRepo: memberRepo,
	}
}

func callerID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(middlewares.TokenUserID).(int64)
	return id, ok
}

// SendMessage store one message, sender is the authenticated caller
// @Summary Send a message
// @Description Stores a message from the authenticated user and delivers it live when the receiver has an open socket
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body domain.OutgoingMessage true "receiver and content"
// @Success 201 {object} domain.Message "stored message"
// @Failure 400 {object} string "missing receiver or content"
// @Failure 401 {object} string "not authenticated"
// @Failure 500 {object} string "storage error"
// @Router /api/messages [post]
func (h *ChatRestHandler) SendMessage(c *fiber.Ctx) error {
	senderID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": domain.ErrNotAuthenticated})
	}

	var req domain.OutgoingMessage
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": domain.ErrInvalidFormat})
	}
	if req.ReceiverID == 0 || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": domain.ErrMissingFields})
	}

	msg, err := h.messageUC.Send(c.UserContext(), senderID, req.ReceiverID, req.Content)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": domain.ErrStoreFailed})
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// ListMessages list the caller's messages by role
// @Summary List messages
// @Description Returns the caller's messages, oldest first. role=sender or role=receiver narrows the list; no role returns the full history
// @Tags Messages
// @Produce json
// @Param role query string false "sender or receiver"
// @Success 200 {array} domain.Message
// @Failure 400 {object} string "unknown role"
// @Failure 401 {object} string "not authenticated"
// @Router /api/messages [get]
func (h *ChatRestHandler) ListMessages(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": domain.ErrNotAuthenticated})
	}

	var (
		msgs []domain.Message
		err  error
	)
	switch role := c.Query("role"); role {
	case "":
		msgs, err = h.messageUC.History(c.UserContext(), userID)
	case string(domain.RoleSender), string(domain.RoleReceiver):
		msgs, err = h.messageUC.Messages(c.UserContext(), userID, domain.MessageRole(role))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "role must be sender or receiver"})
	}
	if err != nil {
		logger.Log.Errorf(fmt.Sprintf("list messages for user(%d) failed:", userID), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load messages"})
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return c.JSON(msgs)
}

// Conversation list all messages between the caller and one partner
// @Summary Get a conversation
// @Description Returns every message between the caller and the given user, oldest first
// @Tags Messages
// @Produce json
// @Param userId path int true "conversation partner id"
// @Success 200 {array} domain.Message
// @Failure 400 {object} string "bad user id"
// @Failure 401 {object} string "not authenticated"
// @Router /api/messages/conversation/{userId} [get]
func (h *ChatRestHandler) Conversation(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": domain.ErrNotAuthenticated})
	}
	partnerID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	msgs, err := h.messageUC.Conversation(c.UserContext(), userID, partnerID)
	if err != nil {
		logger.Log.Errorf(fmt.Sprintf("conversation user(%d) partner(%d) failed:", userID, partnerID), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load conversation"})
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return c.JSON(msgs)
}

// MarkRead mark a received message as read
// @Summary Mark a message read
// @Description Sets is_read on a message the caller received
// @Tags Messages
// @Produce json
// @Param id path int true "message id"
// @Success 200 {object} domain.Message "updated message"
// @Failure 400 {object} string "bad message id"
// @Failure 401 {object} string "not authenticated"
// @Failure 403 {object} string "caller is not the receiver"
// @Failure 404 {object} string "no such message"
// @Router /api/messages/{id}/read [patch]
func (h *ChatRestHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": domain.ErrNotAuthenticated})
	}
	messageID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid message id"})
	}

	msg, err := h.messageUC.MarkRead(c.UserContext(), userID, messageID)
	switch {
	case errors.Is(err, repository.ErrMessageNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "message not found"})
	case errors.Is(err, ErrNotRecipient):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": ErrNotRecipient.Error()})
	case err != nil:
		logger.Log.Errorf(fmt.Sprintf("mark read message(%d) failed:", messageID), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update message"})
	}
	return c.JSON(msg)
}

// GetUser look up one user's public profile
// @Summary Get a user
// @Description Returns the public profile of one user, used to label conversation partners
// @Tags Users
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} domain.Member
// @Failure 400 {object} string "bad user id"
// @Failure 404 {object} string "no such user"
// @Router /api/users/{id} [get]
func (h *ChatRestHandler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	member, err := h.memberRepo.FindByMember(c.UserContext(), &memberdomain.MemberQuery{ID: &id})
	switch {
	case errors.Is(err, memberrepo.ErrMemberNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	case err != nil:
		logger.Log.Errorf(fmt.Sprintf("find user(%d) failed:", id), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load user"})
	}
	return c.JSON(member)
}
