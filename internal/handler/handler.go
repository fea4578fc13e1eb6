package handler

import (
	"context"

	"go.uber.org/zap"

	"appointment-booking-api/internal/booking"
	pb "appointment-booking-api/internal/bookingpb"
	"appointment-booking-api/internal/model"
)

// Accounts is the slice of the store the handler talks to directly; all
// booking state goes through booking.Service.
type Accounts interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	ListNotifications(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) (*model.Notification, error)
}

type Handler struct {
	pb.UnimplementedBookingServiceServer
	accounts Accounts
	svc      *booking.Service
	secret   string
	log      *zap.Logger
}

func New(accounts Accounts, svc *booking.Service, secret string, log *zap.Logger) *Handler {
	return &Handler{accounts: accounts, svc: svc, secret: secret, log: log}
}
