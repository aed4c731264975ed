package domain

// ChatConn is the write side of a live chat socket as seen by the registry
// and the delivery path. *websocket.Conn satisfies it; tests substitute
// fakes.
type ChatConn interface {
	WriteMessage(messageType int, data []byte) error
}
