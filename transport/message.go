// Package transport is the message-typed network layer the relay runs on.
// It knows connections, frames and handlers, never chat semantics.
package transport

import (
	"chat-relay/domain"
	"encoding/json"
	"fmt"
)

type MessageType uint16

// Reserved by the transport. Application types start above MsgHighest.
const (
	MsgConnect    MessageType = 32
	MsgDisconnect MessageType = 33
	MsgError      MessageType = 34
	MsgHighest    MessageType = 47
)

// LocalConnectionID is the host's own in-process connection to its server.
const LocalConnectionID domain.ConnectionID = 0

// Path is the websocket endpoint served by Server.
const Path = "/chat"

// Frame is the unit written on a websocket.
// Buffered frames are retained by the server and replayed to late joiners.
type Frame struct {
	Type     MessageType     `json:"type"`
	Buffered bool            `json:"buffered,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// NetworkMessage is what a Handler receives.
type NetworkMessage struct {
	Conn    domain.ConnectionID
	Type    MessageType
	Payload []byte
}

// ReadMessage decodes the payload into v.
func (m NetworkMessage) ReadMessage(v any) error {
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("decode message type %d from connection %d: %w", m.Type, m.Conn, err)
	}
	return nil
}

type Handler func(msg NetworkMessage)

func isReserved(msgType MessageType) bool {
	return msgType <= MsgHighest
}
