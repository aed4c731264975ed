package domain

// FrameType discriminates the JSON frames on the chat socket.
type FrameType string

const (
	// FrameAuthenticate client -> server, binds the socket to a user
	FrameAuthenticate FrameType = "authenticate"
	// FrameMessage both directions, carries one chat message
	FrameMessage FrameType = "message"
	// FrameAuthSuccess server -> client, acknowledges authenticate
	FrameAuthSuccess FrameType = "auth_success"
	// FrameHistory server -> client, full replay after auth_success
	FrameHistory FrameType = "history"
	// FrameError server -> client, protocol or storage error
	FrameError FrameType = "error"
)

// Error strings carried by FrameError. These are part of the wire contract
// with the existing web client.
const (
	ErrInvalidFormat    = "Invalid message format"
	ErrMissingFields    = "Missing required fields"
	ErrNotAuthenticated = "Not authenticated"
	ErrUserMismatch     = "User mismatch"
	ErrStoreFailed      = "Failed to store message"
	ErrHistoryFailed    = "Failed to load history"
)

// OutgoingMessage is the client-supplied part of a message frame. The sender
// is always taken from the authenticated socket, never from the payload.
type OutgoingMessage struct {
	ReceiverID int64  `json:"receiverId"`
	Content    string `json:"content"`
}

// ClientFrame is any frame the client may send.
type ClientFrame struct {
	Type    FrameType        `json:"type"`
	UserID  int64            `json:"userId,omitempty"`
	Message *OutgoingMessage `json:"message,omitempty"`
}

// ServerFrame is any frame the server may push. The read side of the client
// uses it for every frame type; the write side of the server uses it for
// everything except history.
type ServerFrame struct {
	Type     FrameType `json:"type"`
	Message  *Message  `json:"message,omitempty"`
	Messages []Message `json:"messages,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// HistoryFrame always carries the messages field, even when the replay is
// empty, so the web client can iterate it without a nil check.
type HistoryFrame struct {
	Type     FrameType `json:"type"`
	Messages []Message `json:"messages"`
}
