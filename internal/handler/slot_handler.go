package handler

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	pb "appointment-booking-api/internal/bookingpb"
	"appointment-booking-api/internal/model"
)

func (h *Handler) CreateSlot(ctx context.Context, req *pb.CreateSlotRequest) (*pb.SlotResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	sl, err := h.svc.CreateSlot(ctx, a, req.ProviderId, asTime(req.StartTime), asTime(req.EndTime))
	if err != nil {
		return nil, h.toStatus("create slot", err)
	}
	return &pb.SlotResponse{Slot: slotProto(sl)}, nil
}

func (h *Handler) ListSlots(ctx context.Context, req *pb.ListSlotsRequest) (*pb.ListSlotsResponse, error) {
	slots, err := h.svc.ListSlots(ctx, req.ProviderId, asTime(req.RangeStart), asTime(req.RangeEnd), req.OnlyAvailable)
	if err != nil {
		return nil, h.toStatus("list slots", err)
	}
	out := make([]*pb.Slot, len(slots))
	for i := range slots {
		out[i] = slotProto(&slots[i])
	}
	return &pb.ListSlotsResponse{Slots: out}, nil
}

func slotProto(s *model.Slot) *pb.Slot {
	return &pb.Slot{
		Id:         s.ID,
		ProviderId: s.ProviderID,
		StartTime:  ts(s.Start),
		EndTime:    ts(s.End),
		Available:  s.Available,
	}
}

// unset timestamps map to the zero time so the service applies its defaults
func asTime(t *timestamppb.Timestamp) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.AsTime()
}

func ts(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}
