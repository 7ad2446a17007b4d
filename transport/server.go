package transport

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

type peer struct {
	id     domain.ConnectionID
	socket *websocket.Conn
	send   chan []byte
}

// Server accepts websocket connections and owns their ids.
// Send methods must be called from the dispatcher loop.
type Server struct {
	mu         sync.Mutex
	log        *slog.Logger
	dispatcher *Dispatcher
	handlers   *handlerTable
	history    *History
	upgrader   websocket.Upgrader
	conns      map[domain.ConnectionID]*peer
	retiring   map[domain.ConnectionID]struct{}
	local      *Client
	capacity   int
	bufferSize int
	httpServer *http.Server
	listener   net.Listener
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewServer builds a server. history may be nil when buffered broadcast is not used.
func NewServer(log *slog.Logger, dispatcher *Dispatcher, history *History, connectionBufferSize int) *Server {
	return &Server{
		log:        log,
		dispatcher: dispatcher,
		handlers:   newHandlerTable(),
		history:    history,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns:      make(map[domain.ConnectionID]*peer),
		retiring:   make(map[domain.ConnectionID]struct{}),
		bufferSize: connectionBufferSize,
		ctx:        context.Background(),
	}
}

func (s *Server) RegisterHandler(msgType MessageType, handler Handler) {
	s.handlers.register(msgType, handler)
}

// Listen binds the port and serves in the background until ctx is done or Close is called.
// capacity bounds remote connections; zero or less means unbounded.
func (s *Server) Listen(ctx context.Context, port, capacity int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	mux := http.NewServeMux()
	mux.Handle(Path, s)

	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.capacity = capacity
	s.listener = listener
	s.httpServer = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	srv := s.httpServer
	s.mu.Unlock()

	go func() {
		s.log.Info("Listening for connections", "address", listener.Addr().String(), "capacity", capacity)
		if err := srv.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server stopped", "error", err)
		}
	}()
	return nil
}

// Port is the bound port, useful when listening on port 0.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return 0
	}
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.isFull() {
		s.log.Warn("Refusing connection, server is full", "remote", r.RemoteAddr, "capacity", s.capacity)
		http.Error(w, errors.ErrServerFull.Error(), http.StatusServiceUnavailable)
		return
	}
	socket, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("Websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	socket.SetReadLimit(maxFrameSize)

	p, err := s.accept(socket)
	if err != nil {
		s.log.Warn("Connection rejected", "remote", r.RemoteAddr, "error", err)
		_ = socket.Close()
		return
	}
	s.readPump(p)
}

func (s *Server) isFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity > 0 && len(s.conns) >= s.capacity
}

// accept assigns an id, replays the buffered history and queues the connect
// event before any frame of this connection can be read.
func (s *Server) accept(socket *websocket.Conn) (*peer, error) {
	s.mu.Lock()
	if s.capacity > 0 && len(s.conns) >= s.capacity {
		s.mu.Unlock()
		return nil, errors.ErrServerFull
	}
	backlog := 0
	if s.history != nil {
		backlog = s.history.Len()
	}
	p := &peer{id: s.nextID(), socket: socket, send: make(chan []byte, s.bufferSize+backlog)}
	s.conns[p.id] = p
	go writePump(s.log, socket, p.send)
	if s.history != nil {
		if err := s.history.Replay(func(frame []byte) error {
			p.send <- frame
			return nil
		}); err != nil {
			s.log.Warn("History replay failed", "connection_id", p.id, "error", err)
		}
	}
	ctx := s.ctx
	s.mu.Unlock()

	s.log.Debug("Connection accepted", "connection_id", p.id, "replayed", backlog)
	if err := s.dispatcher.post(ctx, event{
		table: s.handlers,
		msg:   NetworkMessage{Conn: p.id, Type: MsgConnect},
	}); err != nil {
		s.drop(p)
		return nil, err
	}
	return p, nil
}

// nextID returns the smallest free id. Ids of connections whose disconnect
// has not been handled yet stay reserved.
func (s *Server) nextID() domain.ConnectionID {
	for id := LocalConnectionID + 1; ; id++ {
		_, used := s.conns[id]
		_, retiring := s.retiring[id]
		if !used && !retiring {
			return id
		}
	}
}

func (s *Server) readPump(p *peer) {
	defer s.drop(p)
	for {
		frame, raw, err := readFrame(s.log, p.socket)
		if err != nil {
			s.log.Debug("Connection read ended", "connection_id", p.id, "error", err)
			return
		}
		var evt event
		if frame.Buffered {
			// Buffered frames are sequenced by the loop, so every connection
			// sees them in one order.
			evt = event{fn: func() { s.fanoutBuffered(outbound{msgType: frame.Type, payload: frame.Payload, frame: raw}) }}
		} else {
			evt = event{table: s.handlers, msg: NetworkMessage{Conn: p.id, Type: frame.Type, Payload: frame.Payload}}
		}
		if err := s.dispatcher.post(s.ctx, evt); err != nil {
			return
		}
	}
}

func (s *Server) drop(p *peer) {
	s.mu.Lock()
	current, ok := s.conns[p.id]
	ok = ok && current == p
	if ok {
		delete(s.conns, p.id)
		s.retiring[p.id] = struct{}{}
		close(p.send)
	}
	ctx := s.ctx
	s.mu.Unlock()
	if !ok {
		return
	}

	err := s.dispatcher.post(ctx, event{
		table: s.handlers,
		msg:   NetworkMessage{Conn: p.id, Type: MsgDisconnect},
		after: func() { s.release(p.id) },
	})
	if err != nil {
		s.release(p.id)
	}
}

func (s *Server) release(id domain.ConnectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.retiring, id)
}

// SendToAll sends to every connection, the local one included.
func (s *Server) SendToAll(msgType MessageType, v any) error {
	out, err := encode(msgType, v, false)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.fanoutLocked(out)
	local := s.local
	s.mu.Unlock()
	local.deliverLocal(out)
	return nil
}

// SendToAllBuffered is SendToAll plus retention for connections that join later.
func (s *Server) SendToAllBuffered(msgType MessageType, v any) error {
	if s.history == nil {
		s.log.Debug("No history buffer, sending unbuffered", "type", msgType)
		return s.SendToAll(msgType, v)
	}
	out, err := encode(msgType, v, true)
	if err != nil {
		return err
	}
	s.fanoutBuffered(out)
	return nil
}

func (s *Server) fanoutBuffered(out outbound) {
	if s.history == nil {
		s.log.Warn("Dropping buffered frame, server has no history buffer", "type", out.msgType)
		return
	}
	s.mu.Lock()
	if err := s.history.Append(out.frame); err != nil {
		s.log.Warn("Failed to retain buffered frame", "error", err)
	}
	s.fanoutLocked(out)
	local := s.local
	s.mu.Unlock()
	local.deliverLocal(out)
}

// fanoutLocked never blocks: a connection whose queue is full is closed.
func (s *Server) fanoutLocked(out outbound) {
	for _, p := range s.conns {
		select {
		case p.send <- out.frame:
		default:
			s.log.Warn("Connection send buffer full, closing", "connection_id", p.id)
			_ = p.socket.Close()
		}
	}
}

// ConnectLocal opens the host's in-process connection. Must be called from the loop.
func (s *Server) ConnectLocal() *Client {
	c := NewClient(s.log, s.dispatcher, s.bufferSize)
	c.server = s
	c.connected = true

	s.mu.Lock()
	s.local = c
	s.mu.Unlock()

	s.dispatcher.enqueueLocal(event{table: s.handlers, msg: NetworkMessage{Conn: LocalConnectionID, Type: MsgConnect}})
	s.dispatcher.enqueueLocal(event{table: c.handlers, msg: NetworkMessage{Conn: LocalConnectionID, Type: MsgConnect}})
	return c
}

func (s *Server) receiveLocal(out outbound) {
	s.dispatcher.enqueueLocal(event{
		table: s.handlers,
		msg:   NetworkMessage{Conn: LocalConnectionID, Type: out.msgType, Payload: out.payload},
	})
}

func (s *Server) detachLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.local = nil
}

// Connections lists live remote connection ids in ascending order.
func (s *Server) Connections() []domain.ConnectionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := lo.Keys(s.conns)
	slices.Sort(ids)
	return ids
}

// Close stops accepting connections. Queued frames are flushed before
// every remote connection is closed.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	for id, p := range s.conns {
		delete(s.conns, id)
		close(p.send)
	}
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Close()
}
