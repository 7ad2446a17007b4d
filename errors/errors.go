package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrDuplicateConnection = fmt.Errorf("connection already registered")
	ErrSessionNotFound     = fmt.Errorf("session not found")
	ErrMalformedEnvelope   = fmt.Errorf("malformed envelope")
	ErrMalformedRegister   = fmt.Errorf("malformed registration")
	ErrEmptyBody           = fmt.Errorf("message body is empty")
	ErrNotConnected        = fmt.Errorf("transport is not connected")
	ErrServerFull          = fmt.Errorf("server capacity reached")
	ErrWrongRole           = fmt.Errorf("operation not allowed for this role")
	ErrAlreadyStarted      = fmt.Errorf("node already hosting or connected")
	ErrReservedMessageType = fmt.Errorf("message type is reserved by the transport")
	ErrInvalidMode         = fmt.Errorf("invalid relay mode")
	ErrRelayStopped        = fmt.Errorf("relay stopped")
)
