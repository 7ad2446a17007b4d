// Package domain contains core concepts of the chat relay.
// This file defines Session entities and the registration payload.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"chat-relay/errors"
	"fmt"
	"time"
)

// ConnectionID is assigned by the transport and reused only after a disconnect.
type ConnectionID int

// Session is one connected participant as seen by the authoritative node.
type Session struct {
	ConnectionID ConnectionID
	DisplayName  string
	ColorTag     string
	RegisteredAt time.Time
}

// Registration is the payload a client sends right after connecting.
type Registration struct {
	DisplayName string `json:"name" validate:"required"`
	ColorTag    string `json:"color"`
}

func (r Registration) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrMalformedRegister, err)
	}
	return nil
}
