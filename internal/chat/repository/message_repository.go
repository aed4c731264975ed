package repository

import (
	"context"
	"errors"
	"time"

	"alumni_network_service/internal/chat/domain"

	"gorm.io/gorm"
)

// ErrMessageNotFound returned when a message id does not exist.
var ErrMessageNotFound = errors.New("message not found")

// MessageRepository definition message persistence
type MessageRepository interface {
	AutoMigrate() error
	// Create assigns id, created_at and is_read=false and stores the row.
	Create(ctx context.Context, msg *domain.Message) error
	FindByID(ctx context.Context, id int64) (*domain.Message, error)
	// FindByUser returns every message the user sent or received, oldest
	// first.
	FindByUser(ctx context.Context, userID int64, role domain.MessageRole) ([]domain.Message, error)
	// FindConversation returns all messages between two users, oldest first.
	FindConversation(ctx context.Context, userA, userB int64) ([]domain.Message, error)
	MarkRead(ctx context.Context, id int64) (*domain.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository create a MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Message{})
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	msg.ID = 0
	msg.IsRead = false
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) FindByID(ctx context.Context, id int64) (*domain.Message, error) {
	var m domain.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) FindByUser(ctx context.Context, userID int64, role domain.MessageRole) ([]domain.Message, error) {
	var msgs []domain.Message
	column := "receiver_id"
	if role == domain.RoleSender {
		column = "sender_id"
	}
	err := r.db.WithContext(ctx).
		Where(column+" = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) FindConversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	var msgs []domain.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id int64) (*domain.Message, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrMessageNotFound
	}
	return r.FindByID(ctx, id)
}
