package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"alumni_network_service/internal/chat/domain"
	errprocess "alumni_network_service/pkg/err"
	"alumni_network_service/pkg/logger"

	"github.com/gorilla/websocket"
)

// Status is the lifecycle state of a chat session.
type Status string

const (
	// StatusDisconnected no socket, either never connected or closed
	StatusDisconnected Status = "disconnected"
	// StatusConnecting dial in progress
	StatusConnecting Status = "connecting"
	// StatusConnected socket open; set at open, not at the auth ack
	StatusConnected Status = "connected"
	// StatusError the socket failed
	StatusError Status = "error"
)

// Session is a Go chat client: it dials the chat websocket, authenticates,
// absorbs the history replay and keeps a per-partner projection of every
// conversation as live messages arrive.
type Session struct {
	url    string
	userID int64

	mu     sync.Mutex
	status Status
	authed bool
	conn   *websocket.Conn
	conv   Conversations
	done   chan struct{}
}

// NewSession create a Session for one user. url is the full websocket
// endpoint including the auth query parameter.
func NewSession(url string, userID int64) *Session {
	return &Session{
		url:    url,
		userID: userID,
		status: StatusDisconnected,
		conv:   make(Conversations),
	}
}

// Connect dials the chat endpoint and sends the authenticate frame. Without
// a user it does nothing; with a socket already open or opening it does
// nothing. The read loop runs until the socket closes.
func (s *Session) Connect(ctx context.Context) error {
	if s.userID == 0 {
		return nil
	}

	s.mu.Lock()
	if s.status == StatusConnecting || s.status == StatusConnected {
		s.mu.Unlock()
		return nil
	}
	s.status = StatusConnecting
	s.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		s.mu.Lock()
		s.status = StatusError
		s.mu.Unlock()
		return errprocess.Set(fmt.Sprintf("chat dial %s failed: %v", s.url, err))
	}

	s.mu.Lock()
	s.conn = conn
	s.status = StatusConnected
	s.authed = false
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go s.readLoop(conn, done)

	return s.writeFrame(domain.ClientFrame{
		Type:   domain.FrameAuthenticate,
		UserID: s.userID,
	})
}

// SendMessage hands one message to the server. It reports false when the
// socket is not connected or the write fails; the caller decides whether to
// queue or drop.
func (s *Session) SendMessage(receiverID int64, content string) bool {
	s.mu.Lock()
	connected := s.status == StatusConnected && s.conn != nil
	s.mu.Unlock()
	if !connected {
		return false
	}

	err := s.writeFrame(domain.ClientFrame{
		Type: domain.FrameMessage,
		Message: &domain.OutgoingMessage{
			ReceiverID: receiverID,
			Content:    content,
		},
	})
	return err == nil
}

// Disconnect closes the socket. Calling it again, or before Connect, is a
// no-op.
func (s *Session) Disconnect() {
	s.mu.Lock()
	conn := s.conn
	done := s.done
	s.conn = nil
	s.status = StatusDisconnected
	s.mu.Unlock()

	if conn != nil {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}
	if done != nil {
		<-done
	}
}

// Status returns the session state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Authenticated reports whether the server acknowledged the authenticate
// frame.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authed
}

// Conversations returns a snapshot of the per-partner projection.
func (s *Session) Conversations() Conversations {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(Conversations, len(s.conv))
	for partner, thread := range s.conv {
		snapshot[partner] = append([]domain.Message(nil), thread...)
	}
	return snapshot
}

func (s *Session) writeFrame(frame domain.ClientFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return websocket.ErrCloseSent
	}
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *Session) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			// Disconnect already moved the state; anything else is a failure
			if s.conn == conn {
				s.conn = nil
				if websocket.IsCloseError(err,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway,
				) {
					s.status = StatusDisconnected
				} else {
					s.status = StatusError
				}
			}
			s.mu.Unlock()
			return
		}
		s.handleFrame(raw)
	}
}

func (s *Session) handleFrame(raw []byte) {
	var frame domain.ServerFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		logger.Log.Warnf("chat client frame unmarshal error:", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch frame.Type {
	case domain.FrameAuthSuccess:
		s.authed = true
	case domain.FrameHistory:
		s.conv = GroupByPartner(s.userID, frame.Messages)
	case domain.FrameMessage:
		if frame.Message != nil {
			s.conv.Merge(s.userID, *frame.Message)
		}
	case domain.FrameError:
		logger.Log.Warnf("chat server error:", frame.Error)
	default:
		logger.Log.Debugf("chat client ignoring frame type", frame.Type)
	}
}
