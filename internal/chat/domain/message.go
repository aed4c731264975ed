package domain

import "time"

// MessageRole selects which side of a message a user is on when querying
// history.
type MessageRole string

const (
	// RoleSender query messages the user sent
	RoleSender MessageRole = "sender"
	// RoleReceiver query messages the user received
	RoleReceiver MessageRole = "receiver"
)

// Message is one direct message between two users. The column layout mirrors
// the existing messages table and must stay stable: id, sender_id,
// receiver_id, content, is_read, created_at. Only IsRead is mutable after
// creation.
type Message struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SenderID   int64     `gorm:"column:sender_id;not null" json:"senderId"`
	ReceiverID int64     `gorm:"column:receiver_id;not null" json:"receiverId"`
	Content    string    `gorm:"column:content;not null" json:"content"`
	IsRead     bool      `gorm:"column:is_read;not null;default:false" json:"isRead"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

// TableName keep the table name used by the web application
func (Message) TableName() string {
	return "messages"
}

// PartnerID returns the other participant of the message relative to selfID.
func (m Message) PartnerID(selfID int64) int64 {
	if m.SenderID == selfID {
		return m.ReceiverID
	}
	return m.SenderID
}
