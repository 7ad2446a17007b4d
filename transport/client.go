package transport

import (
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const handshakeTimeout = 10 * time.Second

// Client is one node's connection to a server, either over a websocket or,
// for the host itself, in-process (see Server.ConnectLocal).
type Client struct {
	mu         sync.Mutex
	log        *slog.Logger
	dispatcher *Dispatcher
	handlers   *handlerTable
	server     *Server
	send       chan []byte
	connected  bool
	bufferSize int
}

func NewClient(log *slog.Logger, dispatcher *Dispatcher, bufferSize int) *Client {
	return &Client{
		log:        log,
		dispatcher: dispatcher,
		handlers:   newHandlerTable(),
		bufferSize: bufferSize,
	}
}

func (c *Client) RegisterHandler(msgType MessageType, handler Handler) {
	c.handlers.register(msgType, handler)
}

// Connect dials the server. ctx bounds the dial and the lifetime of the connection.
func (c *Client) Connect(ctx context.Context, address string, port int) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return errors.ErrAlreadyStarted
	}
	c.mu.Unlock()

	url := fmt.Sprintf("ws://%s%s", net.JoinHostPort(address, strconv.Itoa(port)), Path)
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	socket, resp, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusServiceUnavailable {
			return fmt.Errorf("%w: %s", errors.ErrServerFull, url)
		}
		return fmt.Errorf("could not connect to %s: %w", url, err)
	}
	socket.SetReadLimit(maxFrameSize)

	c.mu.Lock()
	c.send = make(chan []byte, c.bufferSize)
	c.connected = true
	send := c.send
	c.mu.Unlock()

	go writePump(c.log, socket, send)
	if err := c.dispatcher.post(ctx, event{
		table: c.handlers,
		msg:   NetworkMessage{Conn: LocalConnectionID, Type: MsgConnect},
	}); err != nil {
		c.markDisconnected()
		return err
	}
	go c.readPump(ctx, socket)
	c.log.Debug("Connected", "url", url)
	return nil
}

func (c *Client) readPump(ctx context.Context, socket *websocket.Conn) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.markDisconnected()
		case <-stop:
		}
	}()
	defer func() {
		c.markDisconnected()
		_ = socket.Close()
		_ = c.dispatcher.post(ctx, event{
			table: c.handlers,
			msg:   NetworkMessage{Conn: LocalConnectionID, Type: MsgDisconnect},
		})
	}()
	for {
		frame, _, err := readFrame(c.log, socket)
		if err != nil {
			c.log.Debug("Server connection read ended", "error", err)
			return
		}
		if err := c.dispatcher.post(ctx, event{
			table: c.handlers,
			msg:   NetworkMessage{Conn: LocalConnectionID, Type: frame.Type, Payload: frame.Payload},
		}); err != nil {
			return
		}
	}
}

func (c *Client) markDisconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return false
	}
	c.connected = false
	if c.send != nil {
		close(c.send)
	}
	return true
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Send transmits to the server only. It never blocks: a full queue drops the frame.
func (c *Client) Send(msgType MessageType, v any) error {
	return c.write(msgType, v, false)
}

// SendBuffered asks the server to broadcast to everyone and retain the frame
// for connections that join later.
func (c *Client) SendBuffered(msgType MessageType, v any) error {
	return c.write(msgType, v, true)
}

func (c *Client) write(msgType MessageType, v any, buffered bool) error {
	if isReserved(msgType) {
		return fmt.Errorf("%w: %d", errors.ErrReservedMessageType, msgType)
	}
	out, err := encode(msgType, v, buffered)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return errors.ErrNotConnected
	}
	if server := c.server; server != nil {
		c.mu.Unlock()
		if buffered {
			server.fanoutBuffered(out)
		} else {
			server.receiveLocal(out)
		}
		return nil
	}
	defer c.mu.Unlock()
	select {
	case c.send <- out.frame:
	default:
		c.log.Warn("Send buffer full, dropping frame", "type", msgType)
	}
	return nil
}

// deliverLocal hands a server frame to the in-process connection. Loop only.
func (c *Client) deliverLocal(out outbound) {
	if c == nil {
		return
	}
	c.dispatcher.enqueueLocal(event{
		table: c.handlers,
		msg:   NetworkMessage{Conn: LocalConnectionID, Type: out.msgType, Payload: out.payload},
	})
}

// Disconnect flushes queued frames and closes the connection. The
// disconnect event follows once the socket is down. For the in-process
// connection both sides are notified right away; call it from the loop.
func (c *Client) Disconnect() error {
	if c.server == nil {
		if !c.markDisconnected() {
			return errors.ErrNotConnected
		}
		return nil
	}

	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return errors.ErrNotConnected
	}
	c.connected = false
	server := c.server
	c.mu.Unlock()

	server.detachLocal()
	c.dispatcher.enqueueLocal(event{table: server.handlers, msg: NetworkMessage{Conn: LocalConnectionID, Type: MsgDisconnect}})
	c.dispatcher.enqueueLocal(event{table: c.handlers, msg: NetworkMessage{Conn: LocalConnectionID, Type: MsgDisconnect}})
	return nil
}
