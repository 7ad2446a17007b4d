// Package runtime holds the relay protocol: who may broadcast, who forwards,
// and what every node delivers to its display.
// Everything here runs on the dispatcher loop of the node.
package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/transport"
	"fmt"
	"log/slog"
)

// Application message types.
const (
	MsgChatMessage    = transport.MsgHighest + 1
	MsgRegisterPlayer = transport.MsgHighest + 2
)

// Relay is the single relay protocol, parameterized by role and mode.
//
// In broadcast-all mode every node sends buffered envelopes straight to
// everyone. In register-then-forward mode only the authoritative node
// broadcasts: clients send to it and it echoes to every connection,
// the sender included.
type Relay struct {
	log       *slog.Logger
	role      domain.Role
	mode      domain.Mode
	registry  *Registry
	server    contract.ServerTransport
	client    contract.ClientTransport
	delivered chan<- domain.Envelope
	done      <-chan struct{}
}

// NewRelay returns a relay publishing delivered envelopes on delivered until done is closed.
func NewRelay(log *slog.Logger, role domain.Role, mode domain.Mode, registry *Registry,
	delivered chan<- domain.Envelope, done <-chan struct{}) *Relay {
	return &Relay{
		log:       log,
		role:      role,
		mode:      mode,
		registry:  registry,
		delivered: delivered,
		done:      done,
	}
}

// AttachServer wires the forwarding handlers of the authoritative node.
func (r *Relay) AttachServer(server contract.ServerTransport) {
	r.server = server
	if r.mode != domain.ModeRegisterForward {
		return
	}
	server.RegisterHandler(MsgChatMessage, r.HandleChatMessage)
	server.RegisterHandler(MsgRegisterPlayer, r.HandleRegisterPlayer)
}

// AttachClient sets the connection used to reach the server. The chat
// handler is registered by the lifecycle once the connection is up.
func (r *Relay) AttachClient(client contract.ClientTransport) {
	r.client = client
}

func (r *Relay) Role() domain.Role                { return r.role }
func (r *Relay) Mode() domain.Mode                { return r.mode }
func (r *Relay) Registry() *Registry              { return r.registry }
func (r *Relay) Client() contract.ClientTransport { return r.client }

// Deliver sends a validated envelope along the path its mode and role dictate.
func (r *Relay) Deliver(envelope domain.Envelope) error {
	if err := envelope.Validate(); err != nil {
		return err
	}
	switch {
	case r.mode == domain.ModeBroadcastAll:
		if r.client != nil {
			return r.client.SendBuffered(MsgChatMessage, envelope)
		}
		if r.server != nil {
			return r.server.SendToAllBuffered(MsgChatMessage, envelope)
		}
		return errors.ErrNotConnected
	case r.role == domain.RoleAuthoritative:
		return r.BroadcastToAll(envelope)
	default:
		if r.client == nil {
			return errors.ErrNotConnected
		}
		return r.client.Send(MsgChatMessage, envelope)
	}
}

// Broadcast is the broadcast-all send path. An empty body has no network effect.
func (r *Relay) Broadcast(senderName, senderColor, body string, isNotification bool) error {
	if body == "" {
		return errors.ErrEmptyBody
	}
	return r.Deliver(domain.NewEnvelope(senderName, senderColor, body, isNotification))
}

// SendMessage is the register-then-forward send path. A client never
// delivers to itself: its envelope comes back through the server.
func (r *Relay) SendMessage(senderName, senderColor, body string, isNotification bool) error {
	return r.Deliver(domain.NewEnvelope(senderName, senderColor, body, isNotification))
}

// Submit sends on behalf of the local participant using the path of the current mode.
func (r *Relay) Submit(senderName, senderColor, body string, isNotification bool) error {
	if r.mode == domain.ModeBroadcastAll {
		return r.Broadcast(senderName, senderColor, body, isNotification)
	}
	return r.SendMessage(senderName, senderColor, body, isNotification)
}

// BroadcastToAll sends the envelope, unchanged, to every connection including the local one.
func (r *Relay) BroadcastToAll(envelope domain.Envelope) error {
	if r.role != domain.RoleAuthoritative || r.server == nil {
		return fmt.Errorf("%w: broadcast needs the authoritative role", errors.ErrWrongRole)
	}
	return r.server.SendToAll(MsgChatMessage, envelope)
}

// OnChatMessageReceived forwards a client envelope to everyone.
// Connections that never registered are forwarded too.
func (r *Relay) OnChatMessageReceived(connectionID domain.ConnectionID, envelope domain.Envelope) error {
	if err := envelope.Validate(); err != nil {
		return fmt.Errorf("from connection %d: %w", connectionID, err)
	}
	if _, ok := r.registry.Find(connectionID); !ok {
		r.log.Debug("Forwarding message of an unregistered connection", "connection_id", connectionID)
	}
	return r.BroadcastToAll(envelope)
}

// OnRegisterPlayer records the session of a freshly connected client.
func (r *Relay) OnRegisterPlayer(connectionID domain.ConnectionID, registration domain.Registration) (domain.Session, error) {
	if err := registration.Validate(); err != nil {
		return domain.Session{}, err
	}
	return r.registry.Register(connectionID, registration.DisplayName, registration.ColorTag)
}

// OnEnvelopeReceived pushes an envelope the server sent us to the delivery stream.
func (r *Relay) OnEnvelopeReceived(envelope domain.Envelope) error {
	if err := envelope.Validate(); err != nil {
		return err
	}
	select {
	case r.delivered <- envelope:
		return nil
	case <-r.done:
		return errors.ErrRelayStopped
	}
}

func (r *Relay) HandleChatMessage(msg transport.NetworkMessage) {
	var envelope domain.Envelope
	if err := msg.ReadMessage(&envelope); err != nil {
		r.log.Warn("Dropping undecodable chat message", "connection_id", msg.Conn, "error", err)
		return
	}
	if err := r.OnChatMessageReceived(msg.Conn, envelope); err != nil {
		r.log.Warn("Dropping chat message", "connection_id", msg.Conn, "error", err)
	}
}

func (r *Relay) HandleRegisterPlayer(msg transport.NetworkMessage) {
	var registration domain.Registration
	if err := msg.ReadMessage(&registration); err != nil {
		r.log.Warn("Dropping undecodable registration", "connection_id", msg.Conn, "error", err)
		return
	}
	session, err := r.OnRegisterPlayer(msg.Conn, registration)
	if err != nil {
		r.log.Warn("Registration ignored", "connection_id", msg.Conn, "error", err)
		return
	}
	r.log.Info("Player registered", "connection_id", session.ConnectionID,
		"sender", session.DisplayName, "color", session.ColorTag)
}

func (r *Relay) HandleEnvelope(msg transport.NetworkMessage) {
	var envelope domain.Envelope
	if err := msg.ReadMessage(&envelope); err != nil {
		r.log.Warn("Dropping undecodable envelope", "error", err)
		return
	}
	if err := r.OnEnvelopeReceived(envelope); err != nil {
		r.log.Warn("Envelope not delivered", "sender", envelope.SenderName, "error", err)
	}
}
