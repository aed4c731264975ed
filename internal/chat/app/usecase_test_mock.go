package app

import (
	"context"
	"sync"

	"alumni_network_service/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// AutoMigrate mock migrate
func (m *MockMessageRepository) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create mock store message
func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindByID mock find message by id
func (m *MockMessageRepository) FindByID(ctx context.Context, id int64) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUser mock find messages by role
func (m *MockMessageRepository) FindByUser(ctx context.Context, userID int64, role domain.MessageRole) ([]domain.Message, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindConversation mock find messages between two users
func (m *MockMessageRepository) FindConversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead mock set is_read
func (m *MockMessageRepository) MarkRead(ctx context.Context, id int64) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeConn records every frame written to it. writeErr, when set, makes the
// next write fail.
type fakeConn struct {
	mu       sync.Mutex
	frames   [][]byte
	writeErr error
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	buf := append([]byte(nil), data...)
	c.frames = append(c.frames, buf)
	return nil
}

func (c *fakeConn) written() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.frames...)
}
