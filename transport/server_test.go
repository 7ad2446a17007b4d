package transport

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const msgText = MsgHighest + 1

func newTestServer(t *testing.T, d *Dispatcher, history *History) *Server {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	server := NewServer(log, d, history, 16)
	t.Cleanup(func() { _ = server.Close() })
	return server
}

// textOf runs inside the loop goroutine, so it must not fail the test itself.
func textOf(msg NetworkMessage) string {
	var text string
	if err := msg.ReadMessage(&text); err != nil {
		return "<undecodable>"
	}
	return text
}

func TestServer_Assigns_And_Reuses_Connection_IDs(t *testing.T) {
	req := require.New(t)
	d, ctx := startDispatcher(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	server := newTestServer(t, d, nil)

	connected := make(chan domain.ConnectionID, 8)
	disconnected := make(chan domain.ConnectionID, 8)
	server.RegisterHandler(MsgConnect, func(msg NetworkMessage) { connected <- msg.Conn })
	server.RegisterHandler(MsgDisconnect, func(msg NetworkMessage) { disconnected <- msg.Conn })
	req.NoError(server.Listen(ctx, 0, 4))

	// When two clients connect
	first := NewClient(log, d, 16)
	req.NoError(first.Connect(ctx, "127.0.0.1", server.Port()))
	req.Equal(domain.ConnectionID(1), receive(t, connected))

	second := NewClient(log, d, 16)
	req.NoError(second.Connect(ctx, "127.0.0.1", server.Port()))
	req.Equal(domain.ConnectionID(2), receive(t, connected))

	// And the first one leaves
	req.NoError(first.Disconnect())
	req.Equal(domain.ConnectionID(1), receive(t, disconnected))
	req.NoError(d.Do(ctx, func() {}))

	// Then its id is handed to the next connection
	third := NewClient(log, d, 16)
	req.NoError(third.Connect(ctx, "127.0.0.1", server.Port()))
	req.Equal(domain.ConnectionID(1), receive(t, connected))
	req.Equal([]domain.ConnectionID{1, 2}, server.Connections())
}

func TestServer_Refuses_Connections_Beyond_Capacity(t *testing.T) {
	req := require.New(t)
	d, ctx := startDispatcher(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	server := newTestServer(t, d, nil)

	connected := make(chan domain.ConnectionID, 4)
	server.RegisterHandler(MsgConnect, func(msg NetworkMessage) { connected <- msg.Conn })
	req.NoError(server.Listen(ctx, 0, 1))

	// Given the only slot is taken
	first := NewClient(log, d, 16)
	req.NoError(first.Connect(ctx, "127.0.0.1", server.Port()))
	receive(t, connected)

	// When another client tries to connect
	err := NewClient(log, d, 16).Connect(ctx, "127.0.0.1", server.Port())

	// Then it is refused
	req.ErrorIs(err, errors.ErrServerFull)
	req.Len(server.Connections(), 1)
}

func TestServer_Forwards_Client_Messages_And_Sends_To_All(t *testing.T) {
	req := require.New(t)
	d, ctx := startDispatcher(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	server := newTestServer(t, d, nil)

	fromClients := make(chan NetworkMessage, 8)
	server.RegisterHandler(msgText, func(msg NetworkMessage) {
		fromClients <- msg
		_ = server.SendToAll(msgText, "echo:"+textOf(msg))
	})
	req.NoError(server.Listen(ctx, 0, 4))

	// Given the host's own connection
	atHost := make(chan string, 8)
	req.NoError(d.Do(ctx, func() {
		local := server.ConnectLocal()
		local.RegisterHandler(msgText, func(msg NetworkMessage) { atHost <- textOf(msg) })
	}))

	// And a remote client
	atRemote := make(chan string, 8)
	remote := NewClient(log, d, 16)
	remote.RegisterHandler(msgText, func(msg NetworkMessage) { atRemote <- textOf(msg) })
	req.NoError(remote.Connect(ctx, "127.0.0.1", server.Port()))

	// When the remote client sends to the server
	req.NoError(remote.Send(msgText, "hello"))

	// Then the server sees it from connection 1
	msg := receive(t, fromClients)
	req.Equal(domain.ConnectionID(1), msg.Conn)

	// And the echo reaches both the sender and the host
	req.Equal("echo:hello", receive(t, atRemote))
	req.Equal("echo:hello", receive(t, atHost))
}

func TestServer_Replays_Buffered_History_To_Late_Joiners(t *testing.T) {
	req := require.New(t)
	d, ctx := startDispatcher(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	history, err := OpenHistory(log)
	req.NoError(err)
	defer func() { _ = history.Close() }()
	server := newTestServer(t, d, history)
	req.NoError(server.Listen(ctx, 0, 4))

	atFirst := make(chan string, 8)
	first := NewClient(log, d, 16)
	first.RegisterHandler(msgText, func(msg NetworkMessage) { atFirst <- textOf(msg) })
	req.NoError(first.Connect(ctx, "127.0.0.1", server.Port()))

	// When the first peer broadcasts two buffered messages
	req.NoError(first.SendBuffered(msgText, "one"))
	req.NoError(first.SendBuffered(msgText, "two"))

	// Then it receives its own messages back
	req.Equal("one", receive(t, atFirst))
	req.Equal("two", receive(t, atFirst))
	req.Equal(2, history.Len())

	// When a second peer joins afterwards
	atSecond := make(chan string, 8)
	second := NewClient(log, d, 16)
	second.RegisterHandler(msgText, func(msg NetworkMessage) { atSecond <- textOf(msg) })
	req.NoError(second.Connect(ctx, "127.0.0.1", server.Port()))

	// Then the whole history is replayed in order
	req.Equal("one", receive(t, atSecond))
	req.Equal("two", receive(t, atSecond))
}

func TestClient_Rejects_Reserved_Types_And_Offline_Sends(t *testing.T) {
	req := require.New(t)
	d, _ := startDispatcher(t)
	client := NewClient(logs.GetLoggerFromLevel(slog.LevelDebug), d, 4)

	req.ErrorIs(client.Send(MsgConnect, "x"), errors.ErrReservedMessageType)
	req.ErrorIs(client.Send(msgText, "x"), errors.ErrNotConnected)
	req.ErrorIs(client.Disconnect(), errors.ErrNotConnected)
}

func TestNetworkMessage_ReadMessage(t *testing.T) {
	req := require.New(t)
	payload, err := json.Marshal(map[string]string{"name": "A"})
	req.NoError(err)

	var decoded map[string]string
	req.NoError(NetworkMessage{Payload: payload}.ReadMessage(&decoded))
	req.Equal("A", decoded["name"])

	req.Error(NetworkMessage{Payload: []byte("{")}.ReadMessage(&decoded))
}
