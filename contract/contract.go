//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"chat-relay/transport"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EnvelopeSink receives every delivered envelope, once, in delivery order.
type EnvelopeSink interface {
	Consume(ctx context.Context, envelope domain.Envelope) error
}

// ServerTransport is the authoritative side of the transport.
type ServerTransport interface {
	RegisterHandler(msgType transport.MessageType, handler transport.Handler)
	SendToAll(msgType transport.MessageType, v any) error
	SendToAllBuffered(msgType transport.MessageType, v any) error
}

// ClientTransport is a node's link to the server, remote or in-process.
type ClientTransport interface {
	RegisterHandler(msgType transport.MessageType, handler transport.Handler)
	Send(msgType transport.MessageType, v any) error
	SendBuffered(msgType transport.MessageType, v any) error
	Disconnect() error
	IsConnected() bool
}

// RelayNode is what the admin surface needs from a running node.
type RelayNode interface {
	Sessions(ctx context.Context) ([]domain.Session, error)
	Subscribe(sink EnvelopeSink) (unsubscribe func())
}
