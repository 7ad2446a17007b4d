package node

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/projection"
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const waitFor = 3 * time.Second

func startNode(t *testing.T, name, color string, mode domain.Mode) (*Node, *projection.Transcript) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	n := New(log, Config{
		PlayerName:           name,
		Color:                color,
		Mode:                 mode,
		BufferSize:           64,
		ConnectionBufferSize: 64,
		RestartInterval:      50 * time.Millisecond,
		SinkTimeout:          time.Second,
	})
	transcript := projection.NewTranscript(name)
	n.Subscribe(transcript)
	n.Start(context.Background())
	t.Cleanup(n.Stop)
	return n, transcript
}

func sessionNames(t *testing.T, n *Node) []string {
	sessions, err := n.Sessions(context.Background())
	require.NoError(t, err)
	return lo.Map(sessions, func(s domain.Session, _ int) string { return s.DisplayName })
}

func TestNode_Requires_Start(t *testing.T) {
	req := require.New(t)
	n := New(logs.GetLoggerFromLevel(slog.LevelDebug), Config{PlayerName: "Alice", BufferSize: 1})

	err := n.RequestHost(context.Background(), 0, 1)
	req.True(stderrors.Is(err, errors.ErrNotConnected))
	req.True(stderrors.Is(n.SubmitMessage("hi"), errors.ErrNotConnected))
	req.True(stderrors.Is(n.Quit(), errors.ErrNotConnected))
}

func TestNode_Picks_A_Palette_Color(t *testing.T) {
	n := New(logs.GetLoggerFromLevel(slog.LevelDebug), Config{PlayerName: "Alice", BufferSize: 1})
	require.Contains(t, domain.Palette, n.Color())
}

func TestNode_Host_Only_Once(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	host, transcript := startNode(t, "Server", "D91E18", domain.ModeRegisterForward)

	// Given a hosting node
	req.NoError(host.RequestHost(ctx, 0, 4))
	req.NotZero(host.Port())

	// When it tries to host or connect again
	err := host.RequestHost(ctx, 0, 4)
	req.True(stderrors.Is(err, errors.ErrAlreadyStarted))
	err = host.RequestConnect(ctx, "127.0.0.1", host.Port())
	req.True(stderrors.Is(err, errors.ErrAlreadyStarted))

	// Then its own join was delivered and it is registered
	req.Eventually(func() bool {
		return lo.Contains(transcript.Lines(), "Server has joined the Server.")
	}, waitFor, 10*time.Millisecond)
	req.Equal([]string{"Server"}, sessionNames(t, host))
}

func TestNode_Peer_Has_No_Sessions(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	host, _ := startNode(t, "Server", "D91E18", domain.ModeRegisterForward)
	req.NoError(host.RequestHost(ctx, 0, 4))

	alice, _ := startNode(t, "Alice", "26A65B", domain.ModeRegisterForward)
	req.NoError(alice.RequestConnect(ctx, "127.0.0.1", host.Port()))

	_, err := alice.Sessions(ctx)
	req.True(stderrors.Is(err, errors.ErrWrongRole))
}

func TestNode_Refuses_Connections_Beyond_Capacity(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	host, _ := startNode(t, "Server", "D91E18", domain.ModeRegisterForward)
	req.NoError(host.RequestHost(ctx, 0, 1))

	// Given one remote participant fills the server
	alice, _ := startNode(t, "Alice", "26A65B", domain.ModeRegisterForward)
	req.NoError(alice.RequestConnect(ctx, "127.0.0.1", host.Port()))
	req.Eventually(func() bool { return len(sessionNames(t, host)) == 2 }, waitFor, 10*time.Millisecond)

	// When another one connects
	bob, _ := startNode(t, "Bob", "AEA8D3", domain.ModeRegisterForward)
	err := bob.RequestConnect(ctx, "127.0.0.1", host.Port())

	// Then it is refused
	req.True(stderrors.Is(err, errors.ErrServerFull))
}

func TestNode_Broadcast_Rejects_Empty_Message(t *testing.T) {
	req := require.New(t)
	host, transcript := startNode(t, "Server", "D91E18", domain.ModeBroadcastAll)
	req.NoError(host.RequestHost(context.Background(), 0, 4))
	req.Eventually(func() bool { return transcript.Len() == 1 }, waitFor, 10*time.Millisecond)

	err := host.SubmitMessage("")

	req.True(stderrors.Is(err, errors.ErrEmptyBody))
	req.Never(func() bool { return transcript.Len() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestNode_Forward_Disconnect_Notifies_Everyone_Else(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	host, hostTranscript := startNode(t, "Server", "D91E18", domain.ModeRegisterForward)
	req.NoError(host.RequestHost(ctx, 0, 4))

	alice, _ := startNode(t, "Alice", "26A65B", domain.ModeRegisterForward)
	req.NoError(alice.RequestConnect(ctx, "127.0.0.1", host.Port()))
	bob, bobTranscript := startNode(t, "Bob", "AEA8D3", domain.ModeRegisterForward)
	req.NoError(bob.RequestConnect(ctx, "127.0.0.1", host.Port()))
	req.Eventually(func() bool { return len(sessionNames(t, host)) == 3 }, waitFor, 10*time.Millisecond)

	// When Alice goes away
	req.NoError(alice.Quit())

	// Then the others see her leave exactly once, with her color
	leftOnce := func(tr *projection.Transcript) bool {
		return lo.Count(tr.Lines(), "Alice has left the Server.") == 1
	}
	req.Eventually(func() bool { return leftOnce(hostTranscript) && leftOnce(bobTranscript) }, waitFor, 10*time.Millisecond)
	leave, ok := lo.Find(bobTranscript.Envelopes(), func(e domain.Envelope) bool { return e.Body == domain.LeftBody })
	req.True(ok)
	req.Equal("26A65B", leave.SenderColor)
	req.True(leave.IsNotification)
	req.Equal([]string{"Server", "Bob"}, sessionNames(t, host))
}

func TestNode_Host_Quit_On_Shutdown_Announces_Leave(t *testing.T) {
	for _, mode := range []domain.Mode{domain.ModeBroadcastAll, domain.ModeRegisterForward} {
		t.Run(mode.String(), func(t *testing.T) {
			req := require.New(t)
			// Given the host and Alice were set up under a signal context
			signalCtx, cancel := context.WithCancel(context.Background())
			defer cancel()
			host, _ := startNode(t, "Server", "D91E18", mode)
			req.NoError(host.RequestHost(signalCtx, 0, 4))
			alice, aliceTranscript := startNode(t, "Alice", "26A65B", mode)
			req.NoError(alice.RequestConnect(signalCtx, "127.0.0.1", host.Port()))
			req.Eventually(func() bool {
				return lo.Contains(aliceTranscript.Lines(), "Alice has joined the Server.")
			}, waitFor, 10*time.Millisecond)

			// When the signal fires and the host quits
			cancel()
			req.NoError(host.Quit())

			// Then Alice still sees the host leave
			req.Eventually(func() bool {
				return lo.Count(aliceTranscript.Lines(), "Server has left the Server.") == 1
			}, waitFor, 10*time.Millisecond)
		})
	}
}
