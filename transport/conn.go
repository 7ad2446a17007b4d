package transport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 5 * time.Second
	maxFrameSize = 64 * 1024
)

type outbound struct {
	msgType MessageType
	payload []byte
	frame   []byte
}

func encode(msgType MessageType, v any, buffered bool) (outbound, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return outbound{}, fmt.Errorf("encode payload for message type %d: %w", msgType, err)
	}
	frame, err := json.Marshal(Frame{Type: msgType, Buffered: buffered, Payload: payload})
	if err != nil {
		return outbound{}, err
	}
	return outbound{msgType: msgType, payload: payload, frame: frame}, nil
}

// writePump drains send into the socket. Reads and writes run on separate
// goroutines so a slow reader never blocks the sender's loop.
// Closing send flushes what is queued, then closes the socket.
func writePump(log *slog.Logger, socket *websocket.Conn, send <-chan []byte) {
	defer func() { _ = socket.Close() }()
	for frame := range send {
		_ = socket.SetWriteDeadline(time.Now().Add(writeWait))
		if err := socket.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Debug("Write failed, dropping connection", "error", err)
			return
		}
	}
	_ = socket.SetWriteDeadline(time.Now().Add(writeWait))
	_ = socket.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readFrame returns the next application frame, skipping undecodable ones
// and any frame claiming a reserved type.
func readFrame(log *slog.Logger, socket *websocket.Conn) (Frame, []byte, error) {
	for {
		_, data, err := socket.ReadMessage()
		if err != nil {
			return Frame{}, nil, err
		}
		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Warn("Dropping undecodable frame", "error", err)
			continue
		}
		if isReserved(frame.Type) {
			log.Warn("Dropping frame with reserved type", "type", frame.Type)
			continue
		}
		return frame, data, nil
	}
}
