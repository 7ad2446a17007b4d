package transport

import (
	"context"
	"log/slog"
	"sync"
)

type handlerTable struct {
	mu       sync.RWMutex
	handlers map[MessageType]Handler
}

func newHandlerTable() *handlerTable {
	return &handlerTable{handlers: make(map[MessageType]Handler)}
}

func (t *handlerTable) register(msgType MessageType, handler Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[msgType] = handler
}

func (t *handlerTable) lookup(msgType MessageType) (Handler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.handlers[msgType]
	return h, ok
}

type event struct {
	table *handlerTable
	msg   NetworkMessage
	fn    func()
	// after runs once the handler returned, still inside the loop.
	after func()
	// settled runs once the event and everything it queued locally were handled.
	settled func()
}

// Dispatcher is the single event-handling context of a node.
// Every transport callback and every relay operation runs here, one at a
// time and to completion, so the state they touch needs no locking.
type Dispatcher struct {
	log    *slog.Logger
	events chan event
	// local holds events produced by a handler for an in-process connection.
	// Only the loop goroutine touches it.
	local []event
}

func NewDispatcher(log *slog.Logger, bufferSize int) *Dispatcher {
	return &Dispatcher{log: log, events: make(chan event, bufferSize)}
}

// Run drains events until ctx is done. A panicking handler unwinds Run;
// the supervisor restarts it and the queue is kept.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.log.Debug("Stopping dispatcher")
			return nil
		case evt := <-d.events:
			d.handle(evt)
			d.drainLocal()
			if evt.settled != nil {
				evt.settled()
			}
		}
	}
}

func (d *Dispatcher) drainLocal() {
	for len(d.local) > 0 {
		evt := d.local[0]
		d.local = d.local[1:]
		d.handle(evt)
	}
}

func (d *Dispatcher) handle(evt event) {
	if evt.after != nil {
		defer evt.after()
	}
	if evt.fn != nil {
		evt.fn()
		return
	}
	handler, ok := evt.table.lookup(evt.msg.Type)
	if !ok {
		d.log.Debug("No handler registered, dropping message",
			"type", evt.msg.Type, "connection_id", evt.msg.Conn)
		return
	}
	handler(evt.msg)
}

// Queue exposes the pending event channel, for capacity reports only.
func (d *Dispatcher) Queue() any {
	return d.events
}

// Post enqueues fn to run inside the loop and returns without waiting.
func (d *Dispatcher) Post(ctx context.Context, fn func()) error {
	return d.post(ctx, event{fn: fn})
}

// Do runs fn inside the loop and waits until it, and every local event it
// caused, has been handled. Never call Do from the loop itself.
func (d *Dispatcher) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := d.post(ctx, event{fn: fn, settled: func() { close(done) }}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) post(ctx context.Context, evt event) error {
	select {
	case d.events <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueueLocal must only be called from inside the loop.
func (d *Dispatcher) enqueueLocal(evt event) {
	d.local = append(d.local, evt)
}
