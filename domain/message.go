// Package domain contains core concepts of the chat relay.
// This file defines the chat Envelope and related rules.
// Envelopes are immutable and validated by the domain.
package domain

import (
	"chat-relay/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// System generated bodies.
const (
	JoinedBody = "has joined the Server."
	LeftBody   = "has left the Server."
)

var validate = validator.New()

// Envelope is one chat event on the wire.
// Sender is denormalized (name and color, not a connection id) so that
// history stays valid after the sender leaves.
type Envelope struct {
	ID             uuid.UUID `json:"id"`
	SenderName     string    `json:"senderName" validate:"required"`
	SenderColor    string    `json:"senderColor"`
	Body           string    `json:"body" validate:"required"`
	IsNotification bool      `json:"isNotification"`
}

func NewEnvelope(senderName, senderColor, body string, isNotification bool) Envelope {
	return Envelope{
		ID:             uuid.New(),
		SenderName:     senderName,
		SenderColor:    senderColor,
		Body:           body,
		IsNotification: isNotification,
	}
}

func NewNotification(senderName, senderColor, body string) Envelope {
	return NewEnvelope(senderName, senderColor, body, true)
}

// Validate checks structural well-formedness only, never authenticity.
func (e Envelope) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrMalformedEnvelope, err)
	}
	return nil
}

// Line is the plain transcript form: "sender: body", or "sender body" for notifications.
func (e Envelope) Line() string {
	if e.IsNotification {
		return fmt.Sprintf("%s %s", e.SenderName, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.SenderName, e.Body)
}
