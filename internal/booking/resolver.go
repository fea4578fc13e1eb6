package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

// Repository is the storage the resolver writes through. *store.Store
// satisfies it.
type Repository interface {
	GetSlot(ctx context.Context, id string) (*model.Slot, error)
	InTx(ctx context.Context, fn func(store.Tx) error) error
}

// Resolver owns every write to slot availability and appointment status.
// Exclusivity per slot comes from the storage layer's partial unique index;
// the resolver never locks the slot row.
type Resolver struct {
	repo  Repository
	retry RetryPolicy
	log   *zap.Logger
	now   func() time.Time
}

func NewResolver(repo Repository, retry RetryPolicy, log *zap.Logger) *Resolver {
	return &Resolver{repo: repo, retry: retry, log: log, now: time.Now}
}

// TryBook claims slotID for requesterID. Exactly one of any set of concurrent
// calls for the same slot succeeds: whichever insert commits first.
func (r *Resolver) TryBook(ctx context.Context, requesterID, providerID, slotID, notes string) (*model.Appointment, error) {
	var out *model.Appointment
	attempt := 0

	err := r.retry.Do(ctx, func(ctx context.Context) error {
		attempt++
		slot, err := r.repo.GetSlot(ctx, slotID)
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Entity: "slot", ID: slotID}
		}
		if err != nil {
			return err
		}
		// fast path only; the insert below is authoritative
		if !slot.Available {
			return &ConflictError{SlotID: slotID}
		}

		a := &model.Appointment{
			ID:          uuid.NewString(),
			RequesterID: requesterID,
			ProviderID:  providerID,
			SlotID:      slotID,
			Status:      model.StatusPending,
			Notes:       notes,
		}
		err = r.repo.InTx(ctx, func(tx store.Tx) error {
			if err := tx.InsertAppointment(ctx, a); err != nil {
				if errors.Is(err, store.ErrSlotClaimed) {
					return &ConflictError{SlotID: slotID}
				}
				return err
			}
			_, err := tx.SetSlotAvailability(ctx, slotID, false)
			return err
		})
		if err != nil {
			if errors.Is(err, store.ErrContention) {
				r.log.Debug("booking contention", zap.String("slot", slotID), zap.Int("attempt", attempt), zap.Error(err))
			}
			return err
		}

		a.SlotStart, a.SlotEnd = slot.Start, slot.End
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel moves a non-terminal appointment to cancelled and re-opens its slot
// unless another active appointment still references it.
func (r *Resolver) Cancel(ctx context.Context, appointmentID, actorID string) (*model.Appointment, error) {
	var out *model.Appointment

	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return r.repo.InTx(ctx, func(tx store.Tx) error {
			a, err := tx.AppointmentByID(ctx, appointmentID)
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Entity: "appointment", ID: appointmentID}
			}
			if err != nil {
				return err
			}
			if a.Status.Terminal() {
				return &InvalidStateError{Op: "cancel", Status: a.Status}
			}
			if a.SlotStart.Before(r.now()) {
				return &InvalidStateError{Op: "cancel", Status: a.Status, Reason: "appointment time has already passed"}
			}

			updated, err := tx.TransitionAppointment(ctx, a.ID, a.Status, model.StatusCancelled, actorID)
			if err != nil {
				return err
			}

			// recount inside the transaction; cached state may include stale claims
			n, err := tx.CountActiveClaims(ctx, a.SlotID)
			if err != nil {
				return err
			}
			if n == 0 {
				if _, err := tx.SetSlotAvailability(ctx, a.SlotID, true); err != nil {
					return err
				}
			} else {
				r.log.Warn("slot still claimed after cancel",
					zap.String("slot", a.SlotID), zap.String("appointment", a.ID), zap.Int("active", n))
			}
			out = updated
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transition applies a confirm or complete edge of the status machine.
// Cancellation is routed through Cancel so the slot is re-evaluated.
func (r *Resolver) Transition(ctx context.Context, appointmentID string, to model.Status, actorID string) (*model.Appointment, error) {
	if to == model.StatusCancelled {
		return r.Cancel(ctx, appointmentID, actorID)
	}

	var out *model.Appointment
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return r.repo.InTx(ctx, func(tx store.Tx) error {
			a, err := tx.AppointmentByID(ctx, appointmentID)
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Entity: "appointment", ID: appointmentID}
			}
			if err != nil {
				return err
			}
			if !a.Status.CanTransition(to) {
				return &InvalidStateError{Op: verb(to), Status: a.Status}
			}
			out, err = tx.TransitionAppointment(ctx, a.ID, a.Status, to, actorID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func verb(to model.Status) string {
	switch to {
	case model.StatusConfirmed:
		return "confirm"
	case model.StatusCompleted:
		return "complete"
	case model.StatusCancelled:
		return "cancel"
	}
	return "move"
}
