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

func newTestSession(conn *fakeConn, verifiedID int64) *socketSession {
	return &socketSession{conn: newSyncConn(conn), verifiedID: verifiedID}
}

func decodeFrames(t *testing.T, conn *fakeConn) []domain.ServerFrame {
	t.Helper()
	raw := conn.written()
	frames := make([]domain.ServerFrame, 0, len(raw))
	for _, buf := range raw {
		var frame domain.ServerFrame
		assert.NoError(t, json.Unmarshal(buf, &frame))
		frames = append(frames, frame)
	}
	return frames
}

func TestWebsocketHandler_MalformedJSON(t *testing.T) {
	h := NewChatWebsocketHandler(NewMessageUseCase(new(MockMessageRepository), NewConnRegistry()), NewConnRegistry())
	conn := &fakeConn{}
	sess := newTestSession(conn, 1)

	h.textFrame(context.Background(), sess, []byte("not json"))

	frames := decodeFrames(t, conn)
	assert.Len(t, frames, 1)
	assert.Equal(t, domain.FrameError, frames[0].Type)
	assert.Equal(t, domain.ErrInvalidFormat, frames[0].Error)
	assert.False(t, sess.authenticated)
}

func TestWebsocketHandler_AuthenticateReplaysHistory(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(mockRepo, registry), registry)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	received := []domain.Message{{ID: 1, SenderID: 2, ReceiverID: 1, Content: "hi", CreatedAt: base}}
	mockRepo.On("FindByUser", mock.Anything, int64(1), domain.RoleReceiver).Return(received, nil)
	mockRepo.On("FindByUser", mock.Anything, int64(1), domain.RoleSender).Return([]domain.Message{}, nil)

	conn := &fakeConn{}
	sess := newTestSession(conn, 1)
	h.textFrame(context.Background(), sess, []byte(`{"type":"authenticate","userId":1}`))

	assert.True(t, sess.authenticated)
	assert.Equal(t, int64(1), sess.userID)
	_, registered := registry.Lookup(1)
	assert.True(t, registered)

	frames := decodeFrames(t, conn)
	assert.Len(t, frames, 2)
	assert.Equal(t, domain.FrameAuthSuccess, frames[0].Type)
	assert.Equal(t, domain.FrameHistory, frames[1].Type)
	assert.Len(t, frames[1].Messages, 1)
}

func TestWebsocketHandler_AuthenticateEmptyHistoryKeepsMessagesField(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(mockRepo, registry), registry)

	mockRepo.On("FindByUser", mock.Anything, int64(1), domain.RoleReceiver).Return([]domain.Message{}, nil)
	mockRepo.On("FindByUser", mock.Anything, int64(1), domain.RoleSender).Return([]domain.Message{}, nil)

	conn := &fakeConn{}
	sess := newTestSession(conn, 1)
	h.textFrame(context.Background(), sess, []byte(`{"type":"authenticate","userId":1}`))

	raw := conn.written()
	assert.Len(t, raw, 2)
	assert.Contains(t, string(raw[1]), `"messages":[]`)
}

func TestWebsocketHandler_AuthenticateMissingUserID(t *testing.T) {
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(new(MockMessageRepository), registry), registry)
	conn := &fakeConn{}
	sess := newTestSession(conn, 1)

	h.textFrame(context.Background(), sess, []byte(`{"type":"authenticate"}`))

	frames := decodeFrames(t, conn)
	assert.Len(t, frames, 1)
	assert.Equal(t, domain.ErrMissingFields, frames[0].Error)
	assert.False(t, sess.authenticated)
}

func TestWebsocketHandler_AuthenticateMismatchedIdentity(t *testing.T) {
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(new(MockMessageRepository), registry), registry)
	conn := &fakeConn{}
	sess := newTestSession(conn, 1)

	// token says user 1, frame claims user 99
	h.textFrame(context.Background(), sess, []byte(`{"type":"authenticate","userId":99}`))

	frames := decodeFrames(t, conn)
	assert.Len(t, frames, 1)
	assert.Equal(t, domain.ErrUserMismatch, frames[0].Error)
	assert.False(t, sess.authenticated)
	_, registered := registry.Lookup(99)
	assert.False(t, registered)
}

func TestWebsocketHandler_HistoryFailure(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(mockRepo, registry), registry)

	mockRepo.On("FindByUser", mock.Anything, int64(1), domain.RoleReceiver).Return(nil, errors.New("db down"))

	conn := &fakeConn{}
	sess := newTestSession(conn, 1)
	h.textFrame(context.Background(), sess, []byte(`{"type":"authenticate","userId":1}`))

	// the socket stays authenticated and registered, only the replay failed
	assert.True(t, sess.authenticated)
	frames := decodeFrames(t, conn)
	assert.Len(t, frames, 2)
	assert.Equal(t, domain.FrameAuthSuccess, frames[0].Type)
	assert.Equal(t, domain.ErrHistoryFailed, frames[1].Error)
}

func TestWebsocketHandler_MessageBeforeAuthenticate(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(mockRepo, registry), registry)
	conn := &fakeConn{}
	sess := newTestSession(conn, 1)

	h.textFrame(context.Background(), sess, []byte(`{"type":"message","message":{"receiverId":2,"content":"hi"}}`))

	frames := decodeFrames(t, conn)
	assert.Len(t, frames, 1)
	assert.Equal(t, domain.ErrNotAuthenticated, frames[0].Error)
	// nothing was stored
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWebsocketHandler_MessageMissingFields(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(mockRepo, registry), registry)
	conn := &fakeConn{}
	sess := newTestSession(conn, 1)
	sess.authenticated = true
	sess.userID = 1

	for _, payload := range []string{
		`{"type":"message"}`,
		`{"type":"message","message":{"receiverId":2}}`,
		`{"type":"message","message":{"content":"hi"}}`,
	} {
		h.textFrame(context.Background(), sess, []byte(payload))
	}

	frames := decodeFrames(t, conn)
	assert.Len(t, frames, 3)
	for _, frame := range frames {
		assert.Equal(t, domain.ErrMissingFields, frame.Error)
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWebsocketHandler_MessageStoredAndEchoed(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(mockRepo, registry), registry)

	receiverConn := &fakeConn{}
	registry.Register(2, receiverConn)

	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		msg := args.Get(1).(*domain.Message)
		msg.ID = 77
		msg.CreatedAt = time.Now().UTC()
	}).Return(nil)

	senderConn := &fakeConn{}
	sess := newTestSession(senderConn, 1)
	sess.authenticated = true
	sess.userID = 1

	h.textFrame(context.Background(), sess, []byte(`{"type":"message","message":{"receiverId":2,"content":"hi"}}`))

	senderFrames := decodeFrames(t, senderConn)
	assert.Len(t, senderFrames, 1)
	assert.Equal(t, domain.FrameMessage, senderFrames[0].Type)
	assert.Equal(t, int64(77), senderFrames[0].Message.ID)

	receiverFrames := decodeFrames(t, receiverConn)
	assert.Len(t, receiverFrames, 1)
	assert.Equal(t, int64(77), receiverFrames[0].Message.ID)
}

func TestWebsocketHandler_MessageStoreFailure(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(mockRepo, registry), registry)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	conn := &fakeConn{}
	sess := newTestSession(conn, 1)
	sess.authenticated = true
	sess.userID = 1

	h.textFrame(context.Background(), sess, []byte(`{"type":"message","message":{"receiverId":2,"content":"hi"}}`))

	frames := decodeFrames(t, conn)
	assert.Len(t, frames, 1)
	assert.Equal(t, domain.ErrStoreFailed, frames[0].Error)
	// the session survives a storage failure
	assert.True(t, sess.authenticated)
}

func TestWebsocketHandler_UnknownFrameType(t *testing.T) {
	registry := NewConnRegistry()
	h := NewChatWebsocketHandler(NewMessageUseCase(new(MockMessageRepository), registry), registry)
	conn := &fakeConn{}
	sess := newTestSession(conn, 1)

	h.textFrame(context.Background(), sess, []byte(`{"type":"subscribe"}`))

	frames := decodeFrames(t, conn)
	assert.Len(t, frames, 1)
	assert.Equal(t, domain.ErrInvalidFormat, frames[0].Error)
}
