package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"alumni_network_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMessageUseCase_Send(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()

	receiverConn := &fakeConn{}
	registry.Register(2, receiverConn)

	mockRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		msg := args.Get(1).(*domain.Message)
		msg.ID = 10
		msg.CreatedAt = time.Now().UTC()
	}).Return(nil)

	uc := NewMessageUseCase(mockRepo, registry)
	msg, err := uc.Send(ctx, 1, 2, "hello")

	assert.NoError(t, err)
	assert.Equal(t, int64(10), msg.ID)
	assert.Equal(t, int64(1), msg.SenderID)
	assert.Equal(t, int64(2), msg.ReceiverID)
	assert.False(t, msg.IsRead)

	// the receiver's socket got a message frame
	frames := receiverConn.written()
	assert.Len(t, frames, 1)
	var frame domain.ServerFrame
	assert.NoError(t, json.Unmarshal(frames[0], &frame))
	assert.Equal(t, domain.FrameMessage, frame.Type)
	assert.Equal(t, "hello", frame.Message.Content)

	mockRepo.AssertExpectations(t)
}

func TestMessageUseCase_SendReceiverOffline(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewMessageUseCase(mockRepo, registry)
	msg, err := uc.Send(ctx, 1, 2, "hello")

	assert.NoError(t, err)
	assert.NotNil(t, msg)
	mockRepo.AssertExpectations(t)
}

func TestMessageUseCase_SendStoreFails(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()

	receiverConn := &fakeConn{}
	registry.Register(2, receiverConn)

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

	uc := NewMessageUseCase(mockRepo, registry)
	msg, err := uc.Send(ctx, 1, 2, "hello")

	assert.Error(t, err)
	assert.Nil(t, msg)
	// nothing reaches the receiver when the store fails
	assert.Empty(t, receiverConn.written())
	mockRepo.AssertExpectations(t)
}

func TestMessageUseCase_SendDeliveryFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()

	registry.Register(2, &fakeConn{writeErr: errors.New("broken pipe")})
	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewMessageUseCase(mockRepo, registry)
	msg, err := uc.Send(ctx, 1, 2, "hello")

	assert.NoError(t, err)
	assert.NotNil(t, msg)
	mockRepo.AssertExpectations(t)
}

func TestMessageUseCase_HistoryMergesBothRoles(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	received := []domain.Message{
		{ID: 1, SenderID: 2, ReceiverID: 1, Content: "hi", CreatedAt: base},
		{ID: 4, SenderID: 3, ReceiverID: 1, Content: "later", CreatedAt: base.Add(3 * time.Minute)},
	}
	sent := []domain.Message{
		{ID: 2, SenderID: 1, ReceiverID: 2, Content: "hey", CreatedAt: base.Add(1 * time.Minute)},
		{ID: 3, SenderID: 1, ReceiverID: 3, Content: "yo", CreatedAt: base.Add(2 * time.Minute)},
	}
	mockRepo.On("FindByUser", ctx, int64(1), domain.RoleReceiver).Return(received, nil)
	mockRepo.On("FindByUser", ctx, int64(1), domain.RoleSender).Return(sent, nil)

	uc := NewMessageUseCase(mockRepo, NewConnRegistry())
	history, err := uc.History(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, history, 4)
	for i, wantID := range []int64{1, 2, 3, 4} {
		assert.Equal(t, wantID, history[i].ID)
	}
	mockRepo.AssertExpectations(t)
}

func TestMessageUseCase_HistoryDropsSelfMessageDuplicate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// a note to self shows up in both role queries
	note := domain.Message{ID: 5, SenderID: 1, ReceiverID: 1, Content: "note", CreatedAt: base}
	mockRepo.On("FindByUser", ctx, int64(1), domain.RoleReceiver).Return([]domain.Message{note}, nil)
	mockRepo.On("FindByUser", ctx, int64(1), domain.RoleSender).Return([]domain.Message{note}, nil)

	uc := NewMessageUseCase(mockRepo, NewConnRegistry())
	history, err := uc.History(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, history, 1)
	mockRepo.AssertExpectations(t)
}

func TestMessageUseCase_HistoryRepoError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockRepo.On("FindByUser", ctx, int64(1), domain.RoleReceiver).Return(nil, errors.New("db down"))

	uc := NewMessageUseCase(mockRepo, NewConnRegistry())
	history, err := uc.History(ctx, 1)

	assert.Error(t, err)
	assert.Nil(t, history)
}

func TestMessageUseCase_MarkRead(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)

	stored := &domain.Message{ID: 9, SenderID: 1, ReceiverID: 2, Content: "hi"}
	read := &domain.Message{ID: 9, SenderID: 1, ReceiverID: 2, Content: "hi", IsRead: true}
	mockRepo.On("FindByID", ctx, int64(9)).Return(stored, nil)
	mockRepo.On("MarkRead", ctx, int64(9)).Return(read, nil)

	uc := NewMessageUseCase(mockRepo, NewConnRegistry())
	msg, err := uc.MarkRead(ctx, 2, 9)

	assert.NoError(t, err)
	assert.True(t, msg.IsRead)
	mockRepo.AssertExpectations(t)
}

func TestMessageUseCase_MarkReadNotRecipient(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)

	stored := &domain.Message{ID: 9, SenderID: 1, ReceiverID: 2, Content: "hi"}
	mockRepo.On("FindByID", ctx, int64(9)).Return(stored, nil)

	uc := NewMessageUseCase(mockRepo, NewConnRegistry())
	msg, err := uc.MarkRead(ctx, 1, 9)

	assert.ErrorIs(t, err, ErrNotRecipient)
	assert.Nil(t, msg)
	// the sender must not flip the flag
	mockRepo.AssertNotCalled(t, "MarkRead", ctx, int64(9))
}
