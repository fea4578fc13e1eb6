package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"appointment-booking-api/internal/booking"
	pb "appointment-booking-api/internal/bookingpb"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/model"
)

func actor(ctx context.Context) (model.Actor, error) {
	a, ok := middleware.ActorFrom(ctx)
	if !ok {
		return model.Actor{}, status.Error(codes.Unauthenticated, "no actor")
	}
	return a, nil
}

func (h *Handler) BookAppointment(ctx context.Context, req *pb.BookAppointmentRequest) (*pb.AppointmentResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	apt, err := h.svc.Book(ctx, a, booking.BookRequest{
		RequesterID: req.RequesterId,
		ProviderID:  req.ProviderId,
		SlotID:      req.SlotId,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, h.toStatus("book", err)
	}
	return &pb.AppointmentResponse{Appointment: toProto(apt)}, nil
}

type transitionFunc func(context.Context, model.Actor, string) (*model.Appointment, error)

func (h *Handler) transition(ctx context.Context, op string, id string, fn transitionFunc) (*pb.AppointmentResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	apt, err := fn(ctx, a, id)
	if err != nil {
		return nil, h.toStatus(op, err)
	}
	return &pb.AppointmentResponse{Appointment: toProto(apt)}, nil
}

func (h *Handler) ConfirmAppointment(ctx context.Context, req *pb.AppointmentIDRequest) (*pb.AppointmentResponse, error) {
	return h.transition(ctx, "confirm", req.Id, h.svc.Confirm)
}

func (h *Handler) CancelAppointment(ctx context.Context, req *pb.AppointmentIDRequest) (*pb.AppointmentResponse, error) {
	return h.transition(ctx, "cancel", req.Id, h.svc.Cancel)
}

func (h *Handler) CompleteAppointment(ctx context.Context, req *pb.AppointmentIDRequest) (*pb.AppointmentResponse, error) {
	return h.transition(ctx, "complete", req.Id, h.svc.Complete)
}

func (h *Handler) GetAppointment(ctx context.Context, req *pb.AppointmentIDRequest) (*pb.AppointmentResponse, error) {
	return h.transition(ctx, "get", req.Id, h.svc.Get)
}

func (h *Handler) ListAppointments(ctx context.Context, req *pb.ListAppointmentsRequest) (*pb.ListAppointmentsResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	apts, err := h.svc.List(ctx, a, model.Status(req.Status))
	if err != nil {
		return nil, h.toStatus("list", err)
	}

	out := make([]*pb.Appointment, len(apts))
	for i := range apts {
		out[i] = toProto(&apts[i])
	}
	return &pb.ListAppointmentsResponse{Appointments: out}, nil
}

func toProto(a *model.Appointment) *pb.Appointment {
	return &pb.Appointment{
		Id:          a.ID,
		RequesterId: a.RequesterID,
		ProviderId:  a.ProviderID,
		SlotId:      a.SlotID,
		Status:      string(a.Status),
		Notes:       a.Notes,
		CancelledBy: a.CancelledBy,
		StartTime:   ts(a.SlotStart),
		EndTime:     ts(a.SlotEnd),
		CreatedAt:   ts(a.CreatedAt),
		UpdatedAt:   ts(a.UpdatedAt),
	}
}
