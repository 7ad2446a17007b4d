package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/transport"
	stderrors "errors"
	"log/slog"
)

// Lifecycle turns connection events into join and leave notifications.
type Lifecycle struct {
	log      *slog.Logger
	relay    *Relay
	name     string
	color    string
	quitting bool
}

// NewLifecycle handles the lifecycle of the local participant name, shown with color.
func NewLifecycle(log *slog.Logger, relay *Relay, name, color string) *Lifecycle {
	return &Lifecycle{log: log, relay: relay, name: name, color: color}
}

func (l *Lifecycle) AttachServer(server contract.ServerTransport) {
	server.RegisterHandler(transport.MsgConnect, func(msg transport.NetworkMessage) {
		l.OnServerConnect(msg.Conn)
	})
	server.RegisterHandler(transport.MsgDisconnect, func(msg transport.NetworkMessage) {
		l.OnServerDisconnect(msg.Conn)
	})
}

func (l *Lifecycle) AttachClient(client contract.ClientTransport) {
	client.RegisterHandler(transport.MsgConnect, func(transport.NetworkMessage) {
		l.OnClientConnect()
	})
	client.RegisterHandler(transport.MsgDisconnect, func(transport.NetworkMessage) {
		l.OnClientDisconnect()
	})
}

func (l *Lifecycle) OnServerConnect(connectionID domain.ConnectionID) {
	l.log.Info("Connection opened", "connection_id", connectionID)
}

// OnServerDisconnect announces the departure of a registered session.
// Connections that never registered, or were already removed, are ignored.
func (l *Lifecycle) OnServerDisconnect(connectionID domain.ConnectionID) {
	l.log.Info("Connection closed", "connection_id", connectionID)
	if l.relay.Mode() != domain.ModeRegisterForward {
		return
	}
	registry := l.relay.Registry()
	session, ok := registry.Find(connectionID)
	if !ok {
		l.log.Debug("No session for closed connection", "connection_id", connectionID)
		return
	}
	leave := domain.NewNotification(session.DisplayName, session.ColorTag, domain.LeftBody)
	if err := l.relay.Deliver(leave); err != nil {
		l.log.Warn("Leave notification not sent", "sender", session.DisplayName, "error", err)
	}
	if _, err := registry.Remove(connectionID); err != nil {
		l.log.Debug("Session already removed", "connection_id", connectionID, "error", err)
	}
}

// OnClientConnect runs when our connection to the server is up, the host's
// in-process one included: announce ourselves, then join.
func (l *Lifecycle) OnClientConnect() {
	client := l.relay.Client()
	if client == nil {
		l.log.Warn("Connected without a client transport")
		return
	}
	client.RegisterHandler(MsgChatMessage, l.relay.HandleEnvelope)

	if l.relay.Mode() == domain.ModeRegisterForward {
		registration := domain.Registration{DisplayName: l.name, ColorTag: l.color}
		if err := client.Send(MsgRegisterPlayer, registration); err != nil {
			l.log.Warn("Registration not sent", "error", err)
		}
	}
	if err := l.relay.Submit(l.name, l.color, domain.JoinedBody, true); err != nil {
		l.log.Warn("Join notification not sent", "error", err)
	}
	l.log.Info("Joined", "sender", l.name, "mode", l.relay.Mode().String(), "role", l.relay.Role().String())
}

// OnClientDisconnect runs when our connection to the server is gone.
func (l *Lifecycle) OnClientDisconnect() {
	l.log.Info("Disconnected from server", "sender", l.name)
	if l.quitting || l.relay.Mode() != domain.ModeBroadcastAll {
		return
	}
	// Best effort: the transport is usually already down.
	err := l.relay.Broadcast(l.name, l.color, domain.LeftBody, true)
	if err != nil && !stderrors.Is(err, errors.ErrNotConnected) {
		l.log.Warn("Leave notification not sent", "error", err)
	}
}

// Quit leaves the chat and closes our connection.
//
// In broadcast-all mode the node announces its own departure. In
// register-then-forward mode the authoritative node announces it when it
// handles the disconnect, so a client never sends its own leave.
func (l *Lifecycle) Quit() error {
	client := l.relay.Client()
	if client == nil || !client.IsConnected() {
		return errors.ErrNotConnected
	}
	l.quitting = true
	if l.relay.Mode() == domain.ModeBroadcastAll {
		if err := l.relay.Broadcast(l.name, l.color, domain.LeftBody, true); err != nil {
			l.log.Debug("Leave notification not sent", "error", err)
		}
	}
	return client.Disconnect()
}
