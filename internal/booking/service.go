package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/notify"
	"appointment-booking-api/internal/store"
)

// ServiceRepository is the read side plus slot management the coordinator
// needs on top of the resolver's Repository.
type ServiceRepository interface {
	Repository
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	ListAppointments(ctx context.Context, actor model.Actor, status model.Status) ([]model.Appointment, error)
	HasOverlap(ctx context.Context, requesterID string, start, end time.Time) (bool, error)
	CreateSlot(ctx context.Context, sl *model.Slot) error
	ListSlots(ctx context.Context, providerID string, from, to time.Time, onlyAvailable bool) ([]model.Slot, error)
	UserRole(ctx context.Context, id string) (model.Role, error)
}

type Service struct {
	repo     ServiceRepository
	resolver *Resolver
	policy   Policy
	notifier notify.Dispatcher
	log      *zap.Logger
	now      func() time.Time

	notifyTimeout time.Duration
}

func NewService(repo ServiceRepository, retry RetryPolicy, policy Policy, notifier notify.Dispatcher, log *zap.Logger) *Service {
	return &Service{
		repo:          repo,
		resolver:      NewResolver(repo, retry, log.Named("resolver")),
		policy:        policy,
		notifier:      notifier,
		log:           log,
		now:           time.Now,
		notifyTimeout: 5 * time.Second,
	}
}

type BookRequest struct {
	RequesterID string
	ProviderID  string
	SlotID      string
	Notes       string
}

// Book validates the request against business rules and then claims the
// slot. Validation failures are never retried.
func (s *Service) Book(ctx context.Context, actor model.Actor, req BookRequest) (*model.Appointment, error) {
	if req.RequesterID == "" {
		req.RequesterID = actor.UserID
	}
	if req.SlotID == "" {
		return nil, invalid("slot id required")
	}
	if !actor.IsAdmin() {
		if req.RequesterID != actor.UserID {
			return nil, &AuthorizationError{Reason: "cannot book on behalf of another user"}
		}
		if actor.Role != model.RolePatient {
			return nil, &AuthorizationError{Reason: "only patients can book appointments"}
		}
	} else {
		// admins book on behalf of a patient, never for themselves or staff
		role, err := s.repo.UserRole(ctx, req.RequesterID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "user", ID: req.RequesterID}
		}
		if err != nil {
			return nil, err
		}
		if role != model.RolePatient {
			return nil, invalid("appointments can only be booked for patients")
		}
	}

	slot, err := s.repo.GetSlot(ctx, req.SlotID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "slot", ID: req.SlotID}
	}
	if err != nil {
		return nil, err
	}
	if req.ProviderID == "" {
		req.ProviderID = slot.ProviderID
	}
	if slot.ProviderID != req.ProviderID {
		return nil, invalid("slot does not belong to provider %s", req.ProviderID)
	}
	if req.RequesterID == slot.ProviderID {
		return nil, invalid("provider cannot book their own slot")
	}
	if err := s.policy.Check(slot, s.now()); err != nil {
		return nil, err
	}

	overlap, err := s.repo.HasOverlap(ctx, req.RequesterID, slot.Start, slot.End)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, invalid("you already have an appointment at this time")
	}

	a, err := s.resolver.TryBook(ctx, req.RequesterID, req.ProviderID, req.SlotID, strings.TrimSpace(req.Notes))
	if err != nil {
		return nil, err
	}
	s.log.Info("appointment booked",
		zap.String("appointment", a.ID), zap.String("slot", a.SlotID), zap.String("requester", a.RequesterID))

	s.emit(a, notify.KindCreated, a.ProviderID)
	return a, nil
}

func (s *Service) Confirm(ctx context.Context, actor model.Actor, id string) (*model.Appointment, error) {
	a, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != a.ProviderID {
		return nil, &AuthorizationError{Reason: "only the provider can confirm an appointment"}
	}

	a, err = s.resolver.Transition(ctx, id, model.StatusConfirmed, actor.UserID)
	if err != nil {
		return nil, err
	}
	s.emit(a, notify.KindConfirmed, a.RequesterID)
	return a, nil
}

func (s *Service) Complete(ctx context.Context, actor model.Actor, id string) (*model.Appointment, error) {
	a, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != a.ProviderID {
		return nil, &AuthorizationError{Reason: "only the provider can complete an appointment"}
	}
	return s.resolver.Transition(ctx, id, model.StatusCompleted, actor.UserID)
}

// Cancel lets either party or an admin cancel. The other party is notified;
// both are when an admin cancels.
func (s *Service) Cancel(ctx context.Context, actor model.Actor, id string) (*model.Appointment, error) {
	if _, err := s.visible(ctx, actor, id); err != nil {
		return nil, err
	}

	a, err := s.resolver.Cancel(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	s.log.Info("appointment cancelled", zap.String("appointment", a.ID), zap.String("by", actor.UserID))

	switch actor.UserID {
	case a.ProviderID:
		s.emit(a, notify.KindCancelled, a.RequesterID)
	case a.RequesterID:
		s.emit(a, notify.KindCancelled, a.ProviderID)
	default:
		s.emit(a, notify.KindCancelled, a.RequesterID, a.ProviderID)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, actor model.Actor, id string) (*model.Appointment, error) {
	return s.visible(ctx, actor, id)
}

func (s *Service) List(ctx context.Context, actor model.Actor, status model.Status) ([]model.Appointment, error) {
	if status != "" && !status.Valid() {
		return nil, invalid("unknown status %q", status)
	}
	return s.repo.ListAppointments(ctx, actor, status)
}

// visible loads an appointment the actor is party to. Others get NotFound so
// existence is not revealed.
func (s *Service) visible(ctx context.Context, actor model.Actor, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, invalid("appointment id required")
	}
	a, err := s.repo.GetAppointment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "appointment", ID: id}
	}
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !a.Party(actor.UserID) {
		return nil, &NotFoundError{Entity: "appointment", ID: id}
	}
	return a, nil
}

// CreateSlot publishes a bookable slot. Providers publish their own; admins
// may publish for any provider.
func (s *Service) CreateSlot(ctx context.Context, actor model.Actor, providerID string, start, end time.Time) (*model.Slot, error) {
	if providerID == "" {
		providerID = actor.UserID
	}
	switch {
	case actor.IsAdmin():
	case actor.Role == model.RoleProvider && providerID == actor.UserID:
	default:
		return nil, &AuthorizationError{Reason: "only providers can publish their slots"}
	}
	if start.IsZero() || end.IsZero() {
		return nil, invalid("start and end required")
	}
	if !end.After(start) {
		return nil, invalid("end must be after start")
	}
	if start.Before(s.now()) {
		return nil, invalid("slot is in the past")
	}

	sl := &model.Slot{ID: uuid.NewString(), ProviderID: providerID, Start: start, End: end}
	err := s.repo.CreateSlot(ctx, sl)
	switch {
	case errors.Is(err, store.ErrOverlap):
		return nil, invalid("slot overlaps an existing slot")
	case errors.Is(err, store.ErrNotFound):
		return nil, &NotFoundError{Entity: "provider", ID: providerID}
	case err != nil:
		return nil, err
	}
	return sl, nil
}

func (s *Service) ListSlots(ctx context.Context, providerID string, from, to time.Time, onlyAvailable bool) ([]model.Slot, error) {
	if providerID == "" {
		return nil, invalid("provider id required")
	}
	if from.IsZero() {
		from = s.now()
	}
	if to.IsZero() {
		to = from.Add(s.policy.MaxAdvance)
	}
	if !to.After(from) {
		return nil, invalid("range end must be after range start")
	}
	return s.repo.ListSlots(ctx, providerID, from, to, onlyAvailable)
}

// emit hands events to the dispatcher off the request path. A failed
// dispatch is logged and never affects the committed booking.
func (s *Service) emit(a *model.Appointment, kind notify.Kind, recipients ...string) {
	for _, to := range recipients {
		ev := notify.Event{AppointmentID: a.ID, Kind: kind, RecipientUserID: to, OccurredAt: s.now()}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
			defer cancel()
			if err := s.notifier.Dispatch(ctx, ev); err != nil {
				s.log.Warn("notification dispatch failed",
					zap.String("kind", string(ev.Kind)), zap.String("appointment", ev.AppointmentID), zap.Error(err))
			}
		}()
	}
}
