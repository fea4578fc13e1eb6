package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "appointment-booking-api/internal/bookingpb"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

func (h *Handler) ListNotifications(ctx context.Context, _ *pb.ListNotificationsRequest) (*pb.ListNotificationsResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	ns, err := h.accounts.ListNotifications(ctx, a.UserID)
	if err != nil {
		h.log.Error("list notifications", zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	out := make([]*pb.Notification, len(ns))
	for i := range ns {
		out[i] = notificationProto(&ns[i])
	}
	return &pb.ListNotificationsResponse{Notifications: out}, nil
}

// MarkNotificationRead acknowledges one of the caller's own notifications.
func (h *Handler) MarkNotificationRead(ctx context.Context, req *pb.MarkNotificationReadRequest) (*pb.NotificationResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "notification id is required")
	}
	n, err := h.accounts.MarkNotificationRead(ctx, a.UserID, req.Id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, status.Error(codes.NotFound, "notification not found")
	}
	if err != nil {
		h.log.Error("mark notification read", zap.String("id", req.Id), zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &pb.NotificationResponse{Notification: notificationProto(n)}, nil
}

func notificationProto(n *model.Notification) *pb.Notification {
	return &pb.Notification{
		Id:            n.ID,
		AppointmentId: n.AppointmentID,
		Kind:          n.Kind,
		Title:         n.Title,
		Message:       n.Message,
		Read:          n.Read,
		CreatedAt:     ts(n.CreatedAt),
	}
}
