package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"alumni_network_service/internal/chat/domain"
	"alumni_network_service/pkg/logger"
	"alumni_network_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// socketSession is the per-connection state. verifiedID comes from the JWT
// middleware and never changes; userID and gen are set by a successful
// authenticate frame.
type socketSession struct {
	conn          *syncConn
	verifiedID    int64
	userID        int64
	gen           string
	authenticated bool
}

// ChatWebsocketHandler drives one chat socket: authenticate, replay
// history, then relay message frames until the peer disconnects.
type ChatWebsocketHandler struct {
	messageUC *MessageUseCase
	registry  *ConnRegistry
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(messageUC *MessageUseCase, registry *ConnRegistry) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		messageUC: messageUC,
		registry:  registry,
	}
}

// HandleConnection is the entry point for one websocket connection. It owns
// the read loop; all writes to this socket go through sess.conn so delivery
// from other goroutines stays serialized.
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	verifiedID, ok := conn.Locals(middlewares.TokenUserID).(int64)
	logger.Log.Info("websocket opened",
		zap.Int64("verifiedID", verifiedID),
		zap.Bool("hasToken", ok),
		zap.String("remote", conn.RemoteAddr().String()))

	sess := &socketSession{conn: newSyncConn(conn), verifiedID: verifiedID}

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		cancel()
		conn.Close()
		if sess.authenticated {
			// gen guard: if this user already reconnected, the newer
			// registration survives
			h.registry.Unregister(sess.userID, sess.gen)
		}
		logger.Log.Info("websocket closed", zap.Int64("userID", sess.userID))
	}()

	// fiber answers close/ping/pong frames itself, the handlers below only
	// surface them in the log
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof(fmt.Sprintf("websocket close frame code(%d) from", code), conn.RemoteAddr())
		return nil
	})
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Debug("websocket pong", zap.String("data", appData))
		return nil
	})
	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	// keepalive ping
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := sess.conn.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
					logger.Log.Errorf("ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Info("websocket connection closed", zap.Error(err))
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execFrame(ctx, sess, mt, raw)
	}
}

func (h *ChatWebsocketHandler) execFrame(ctx context.Context, sess *socketSession, mt int, raw []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textFrame(ctx, sess, raw)
	default:
		// the protocol is JSON text frames only
		h.sendError(sess.conn, domain.ErrInvalidFormat)
	}
}

func (h *ChatWebsocketHandler) textFrame(ctx context.Context, sess *socketSession, raw []byte) {
	var frame domain.ClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		logger.Log.Warnf("websocket frame unmarshal error:", err)
		h.sendError(sess.conn, domain.ErrInvalidFormat)
		return
	}

	switch frame.Type {
	case domain.FrameAuthenticate:
		h.authenticate(ctx, sess, frame)
	case domain.FrameMessage:
		h.message(ctx, sess, frame)
	default:
		h.sendError(sess.conn, domain.ErrInvalidFormat)
	}
}

// authenticate binds the socket to a user, registers it for delivery and
// replays the full message history. Registration happens before the history
// query so a message stored in between is both replayed and delivered live;
// the client drops the duplicate by id.
func (h *ChatWebsocketHandler) authenticate(ctx context.Context, sess *socketSession, frame domain.ClientFrame) {
	if frame.UserID == 0 {
		h.sendError(sess.conn, domain.ErrMissingFields)
		return
	}
	if sess.verifiedID != 0 && frame.UserID != sess.verifiedID {
		logger.Log.Warn("authenticate user mismatch",
			zap.Int64("claimed", frame.UserID),
			zap.Int64("verified", sess.verifiedID))
		h.sendError(sess.conn, domain.ErrUserMismatch)
		return
	}

	if sess.authenticated {
		// re-authenticate on the same socket moves the registration
		h.registry.Unregister(sess.userID, sess.gen)
	}
	sess.userID = frame.UserID
	sess.gen = h.registry.Register(frame.UserID, sess.conn)
	sess.authenticated = true

	h.send(sess.conn, domain.ServerFrame{Type: domain.FrameAuthSuccess})

	history, err := h.messageUC.History(ctx, sess.userID)
	if err != nil {
		logger.Log.Errorf(fmt.Sprintf("load history for user(%d) failed:", sess.userID), err)
		h.sendError(sess.conn, domain.ErrHistoryFailed)
		return
	}
	if history == nil {
		history = []domain.Message{}
	}
	h.send(sess.conn, domain.HistoryFrame{Type: domain.FrameHistory, Messages: history})
}

// message stores one chat message and echoes the stored row back to the
// sender. Delivery to the receiver happens inside the use case.
func (h *ChatWebsocketHandler) message(ctx context.Context, sess *socketSession, frame domain.ClientFrame) {
	if !sess.authenticated {
		logger.Log.Warn("message frame before authenticate")
		h.sendError(sess.conn, domain.ErrNotAuthenticated)
		return
	}
	if frame.Message == nil || frame.Message.ReceiverID == 0 || frame.Message.Content == "" {
		h.sendError(sess.conn, domain.ErrMissingFields)
		return
	}

	msg, err := h.messageUC.Send(ctx, sess.userID, frame.Message.ReceiverID, frame.Message.Content)
	if err != nil {
		h.sendError(sess.conn, domain.ErrStoreFailed)
		return
	}
	h.send(sess.conn, domain.ServerFrame{Type: domain.FrameMessage, Message: msg})
}

func (h *ChatWebsocketHandler) send(conn *syncConn, frame any) {
	payload, err := json.Marshal(frame)
	if err != nil {
		logger.Log.Errorf("marshal server frame failed:", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		logger.Log.Warnf("websocket write error:", err)
	}
}

func (h *ChatWebsocketHandler) sendError(conn *syncConn, errMsg string) {
	h.send(conn, domain.ServerFrame{Type: domain.FrameError, Error: errMsg})
}
