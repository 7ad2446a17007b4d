package errors

import (
	"context"
	stderrors "errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MapToGRPCError translates relay sentinels into gRPC status errors.
func MapToGRPCError(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case stderrors.Is(err, ErrWrongRole), stderrors.Is(err, ErrNotConnected):
		return status.Error(codes.FailedPrecondition, err.Error())
	case stderrors.Is(err, ErrMalformedEnvelope), stderrors.Is(err, ErrMalformedRegister),
		stderrors.Is(err, ErrEmptyBody):
		return status.Error(codes.InvalidArgument, err.Error())
	case stderrors.Is(err, ErrServerFull):
		return status.Error(codes.ResourceExhausted, err.Error())
	case stderrors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
