package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"appointment-booking-api/internal/booking"
)

// toStatus maps booking errors onto gRPC codes. Anything unrecognised is
// logged and surfaced as Internal without detail.
func (h *Handler) toStatus(op string, err error) error {
	var (
		verr *booking.ValidationError
		cerr *booking.ConflictError
		nerr *booking.NotFoundError
		aerr *booking.AuthorizationError
		serr *booking.InvalidStateError
		terr *booking.TransientError
	)
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.As(err, &cerr):
		return status.Error(codes.AlreadyExists, cerr.Error())
	case errors.As(err, &nerr):
		return status.Error(codes.NotFound, nerr.Error())
	case errors.As(err, &aerr):
		return status.Error(codes.PermissionDenied, aerr.Error())
	case errors.As(err, &serr):
		return status.Error(codes.FailedPrecondition, serr.Error())
	case errors.As(err, &terr):
		h.log.Warn("retries exhausted", zap.String("op", op), zap.Int("attempts", terr.Attempts), zap.Error(terr.Err))
		return status.Error(codes.Unavailable, terr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	}
	h.log.Error("unexpected error", zap.String("op", op), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
