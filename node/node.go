// Package node is what a display talks to: it wires the dispatcher, the
// transports and the relay of one participant, and streams back every
// envelope the participant should see.
package node

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/transport"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

type Config struct {
	PlayerName string
	// Color is picked from the palette when empty.
	Color                string
	Mode                 domain.Mode
	BufferSize           int
	ConnectionBufferSize int
	RestartInterval      time.Duration
	// MetricInterval of zero disables health reports.
	MetricInterval time.Duration
	SinkTimeout    time.Duration
}

// Node is one participant. It either hosts the server or connects to one,
// never both, and only once.
type Node struct {
	mu         sync.Mutex
	log        *slog.Logger
	cfg        Config
	color      string
	dispatcher *transport.Dispatcher
	supervisor *workers.Supervisor
	fanout     *workers.DeliveryFanout
	delivered  chan domain.Envelope
	relay      *runtime.Relay
	lifecycle  *runtime.Lifecycle
	server     *transport.Server
	history    *transport.History
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

func New(log *slog.Logger, cfg Config) *Node {
	color := cfg.Color
	if color == "" {
		color = domain.PickColor(rand.IntN)
	}
	delivered := make(chan domain.Envelope, cfg.BufferSize)
	return &Node{
		log:        log.With("player", cfg.PlayerName),
		cfg:        cfg,
		color:      color,
		dispatcher: transport.NewDispatcher(log, cfg.BufferSize),
		supervisor: workers.NewSupervisor(log, cfg.RestartInterval),
		fanout:     workers.NewDeliveryFanout(log, delivered, cfg.SinkTimeout),
		delivered:  delivered,
		done:       make(chan struct{}),
	}
}

// Start runs the node's workers in the background until ctx is done or Stop is called.
func (n *Node) Start(ctx context.Context) {
	n.mu.Lock()
	n.ctx, n.cancel = context.WithCancel(ctx)
	n.supervisor.Add(n.dispatcher, n.fanout)
	if n.cfg.MetricInterval > 0 {
		n.supervisor.Add(
			workers.NewHealthWorker(n.log, n.cfg.MetricInterval, n.sessionCount),
			workers.NewChannelCapacityWorker(n.log, []workers.NamedChannel{
				{Name: "dispatcher", Channel: n.dispatcher.Queue()},
				{Name: "delivered", Channel: n.delivered},
			}, n.cfg.MetricInterval),
		)
	}
	runCtx := n.ctx
	n.mu.Unlock()

	go func() {
		defer close(n.done)
		n.supervisor.Run(runCtx)
	}()
}

// Subscribe adds a display. It receives every delivered envelope once, in order.
func (n *Node) Subscribe(sink contract.EnvelopeSink) (unsubscribe func()) {
	return n.fanout.Subscribe(sink)
}

func (n *Node) Name() string  { return n.cfg.PlayerName }
func (n *Node) Color() string { return n.color }

// RequestHost starts the server on port and joins it through the
// in-process connection. capacity bounds remote connections.
func (n *Node) RequestHost(ctx context.Context, port, capacity int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.ready(); err != nil {
		return err
	}

	var history *transport.History
	if n.cfg.Mode == domain.ModeBroadcastAll {
		h, err := transport.OpenHistory(n.log)
		if err != nil {
			return fmt.Errorf("failed to open history buffer: %w", err)
		}
		history = h
	}
	server := transport.NewServer(n.log, n.dispatcher, history, n.cfg.ConnectionBufferSize)
	relay, lifecycle := n.newRelay(domain.RoleFor(n.cfg.Mode, true))
	relay.AttachServer(server)
	lifecycle.AttachServer(server)

	if err := server.Listen(n.ctx, port, capacity); err != nil {
		closeHistory(n.log, history)
		return err
	}
	err := n.dispatcher.Do(ctx, func() {
		client := server.ConnectLocal()
		relay.AttachClient(client)
		lifecycle.AttachClient(client)
	})
	if err != nil {
		_ = server.Close()
		closeHistory(n.log, history)
		return err
	}

	n.server, n.history = server, history
	n.relay, n.lifecycle = relay, lifecycle
	n.log.Info("Hosting", "port", server.Port(), "capacity", capacity, "mode", n.cfg.Mode.String())
	return nil
}

// RequestConnect joins the server at address:port. It returns once the
// join notification has been sent.
func (n *Node) RequestConnect(ctx context.Context, address string, port int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.ready(); err != nil {
		return err
	}

	client := transport.NewClient(n.log, n.dispatcher, n.cfg.ConnectionBufferSize)
	relay, lifecycle := n.newRelay(domain.RoleFor(n.cfg.Mode, false))
	relay.AttachClient(client)
	lifecycle.AttachClient(client)

	if err := client.Connect(n.ctx, address, port); err != nil {
		return err
	}
	// The connect event is ahead in the queue.
	if err := n.dispatcher.Do(ctx, func() {}); err != nil {
		return err
	}
	n.relay, n.lifecycle = relay, lifecycle
	return nil
}

// SubmitMessage sends text as the local participant.
func (n *Node) SubmitMessage(text string) error {
	relay, ctx, err := n.current()
	if err != nil {
		return err
	}
	var submitErr error
	if err := n.dispatcher.Do(ctx, func() {
		submitErr = relay.Submit(n.cfg.PlayerName, n.color, text, false)
	}); err != nil {
		return err
	}
	return submitErr
}

// Quit leaves the chat. A hosting node also shuts its server down.
func (n *Node) Quit() error {
	n.mu.Lock()
	lifecycle, server, history, ctx := n.lifecycle, n.server, n.history, n.ctx
	n.mu.Unlock()
	if lifecycle == nil {
		return errors.ErrNotConnected
	}

	var quitErr error
	if err := n.dispatcher.Do(ctx, func() { quitErr = lifecycle.Quit() }); err != nil {
		return err
	}
	if server != nil {
		if err := server.Close(); err != nil {
			n.log.Debug("Server close", "error", err)
		}
		n.mu.Lock()
		n.history = nil
		n.mu.Unlock()
		closeHistory(n.log, history)
	}
	return quitErr
}

// Sessions lists the registered sessions. Only the authoritative node has them.
func (n *Node) Sessions(ctx context.Context) ([]domain.Session, error) {
	relay, _, err := n.current()
	if err != nil {
		return nil, err
	}
	if relay.Role() != domain.RoleAuthoritative {
		return nil, fmt.Errorf("%w: sessions are kept by the authoritative node", errors.ErrWrongRole)
	}
	var sessions []domain.Session
	if err := n.dispatcher.Do(ctx, func() { sessions = relay.Registry().All() }); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Port is the port the hosted server listens on, zero when not hosting.
func (n *Node) Port() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.server == nil {
		return 0
	}
	return n.server.Port()
}

// Stop tears everything down without notifying anyone.
func (n *Node) Stop() {
	n.mu.Lock()
	cancel, server, history := n.cancel, n.server, n.history
	n.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	if server != nil {
		_ = server.Close()
	}
	<-n.done
	closeHistory(n.log, history)
}

func (n *Node) sessionCount(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	sessions, err := n.Sessions(ctx)
	return len(sessions), err
}

// ready must be called with n.mu held.
func (n *Node) ready() error {
	if n.ctx == nil {
		return fmt.Errorf("%w: node not started", errors.ErrNotConnected)
	}
	if n.relay != nil {
		return errors.ErrAlreadyStarted
	}
	return nil
}

func (n *Node) current() (*runtime.Relay, context.Context, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.relay == nil {
		return nil, nil, errors.ErrNotConnected
	}
	return n.relay, n.ctx, nil
}

func (n *Node) newRelay(role domain.Role) (*runtime.Relay, *runtime.Lifecycle) {
	relay := runtime.NewRelay(n.log, role, n.cfg.Mode, runtime.NewRegistry(), n.delivered, n.ctx.Done())
	lifecycle := runtime.NewLifecycle(n.log, relay, n.cfg.PlayerName, n.color)
	return relay, lifecycle
}

func closeHistory(log *slog.Logger, history *transport.History) {
	if history == nil {
		return
	}
	if err := history.Close(); err != nil {
		log.Debug("History close", "error", err)
	}
}
