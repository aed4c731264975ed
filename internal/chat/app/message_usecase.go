package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"alumni_network_service/internal/chat/domain"
	"alumni_network_service/internal/chat/repository"
	"alumni_network_service/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

// ErrNotRecipient returned when someone other than the receiver tries to
// mark a message read.
var ErrNotRecipient = errors.New("only the recipient can mark a message as read")

// MessageUseCase owns the messaging rules: persist first, then deliver to
// whoever is online. Delivery is best effort; the durable row plus the
// history replay on reconnect covers an offline or failed push.
type MessageUseCase struct {
	msgRepo  repository.MessageRepository
	registry *ConnRegistry
}

// NewMessageUseCase create MessageUseCase
func NewMessageUseCase(msgRepo repository.MessageRepository, registry *ConnRegistry) *MessageUseCase {
	return &MessageUseCase{msgRepo: msgRepo, registry: registry}
}

// Send persists one message and pushes it to the receiver's socket when one
// is registered. The stored message is returned for the sender's echo.
func (uc *MessageUseCase) Send(ctx context.Context, senderID, receiverID int64, content string) (*domain.Message, error) {
	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := uc.msgRepo.Create(ctx, msg); err != nil {
		logger.Log.Errorf(fmt.Sprintf("store message sender(%d) receiver(%d) failed:", senderID, receiverID), err)
		return nil, err
	}
	uc.deliver(msg)
	return msg, nil
}

// deliver pushes msg to the receiver's live socket, if any. A write failure
// is logged and swallowed; the receiver picks the message up from history.
func (uc *MessageUseCase) deliver(msg *domain.Message) bool {
	conn, ok := uc.registry.Lookup(msg.ReceiverID)
	if !ok {
		return false
	}
	payload, err := json.Marshal(domain.ServerFrame{Type: domain.FrameMessage, Message: msg})
	if err != nil {
		logger.Log.Errorf(fmt.Sprintf("marshal message(%d) failed:", msg.ID), err)
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		logger.Log.Warnf(fmt.Sprintf("deliver message(%d) to user(%d) failed:", msg.ID, msg.ReceiverID), err)
		return false
	}
	return true
}

// History returns every message the user sent or received, oldest first.
// A message a user sent to themselves satisfies both roles, so the merge
// drops duplicate ids.
func (uc *MessageUseCase) History(ctx context.Context, userID int64) ([]domain.Message, error) {
	received, err := uc.msgRepo.FindByUser(ctx, userID, domain.RoleReceiver)
	if err != nil {
		return nil, err
	}
	sent, err := uc.msgRepo.FindByUser(ctx, userID, domain.RoleSender)
	if err != nil {
		return nil, err
	}
	return mergeHistory(received, sent), nil
}

// Messages returns the user's messages for one role, oldest first.
func (uc *MessageUseCase) Messages(ctx context.Context, userID int64, role domain.MessageRole) ([]domain.Message, error) {
	return uc.msgRepo.FindByUser(ctx, userID, role)
}

// Conversation returns all messages between two users, oldest first.
func (uc *MessageUseCase) Conversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	return uc.msgRepo.FindConversation(ctx, userA, userB)
}

// MarkRead flips is_read on a message the caller received.
func (uc *MessageUseCase) MarkRead(ctx context.Context, userID, messageID int64) (*domain.Message, error) {
	msg, err := uc.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.ReceiverID != userID {
		return nil, ErrNotRecipient
	}
	return uc.msgRepo.MarkRead(ctx, messageID)
}

// mergeHistory merges two slices already ordered by (created_at, id) into
// one ordered slice with duplicate ids removed.
func mergeHistory(a, b []domain.Message) []domain.Message {
	out := make([]domain.Message, 0, len(a)+len(b))
	seen := make(map[int64]struct{}, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var next domain.Message
		switch {
		case i == len(a):
			next, j = b[j], j+1
		case j == len(b):
			next, i = a[i], i+1
		case before(a[i], b[j]):
			next, i = a[i], i+1
		default:
			next, j = b[j], j+1
		}
		if _, dup := seen[next.ID]; dup {
			continue
		}
		seen[next.ID] = struct{}{}
		out = append(out, next)
	}
	return out
}

func before(a, b domain.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
