package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"appointment-booking-api/internal/model"
)

const appointmentSelect = `SELECT a.id, a.requester_id, a.provider_id, a.slot_id, a.status, a.notes,
		COALESCE(a.cancelled_by, ''), a.created_at, a.updated_at, s.starts_at, s.ends_at
	FROM appointments a JOIN slots s ON s.id = a.slot_id`

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	a := &model.Appointment{}
	var st string
	err := row.Scan(&a.ID, &a.RequesterID, &a.ProviderID, &a.SlotID, &st, &a.Notes,
		&a.CancelledBy, &a.CreatedAt, &a.UpdatedAt, &a.SlotStart, &a.SlotEnd)
	if err != nil {
		return nil, classify(err)
	}
	a.Status = model.Status(st)
	return a, nil
}

func appointmentByID(ctx context.Context, q querier, id string) (*model.Appointment, error) {
	return scanAppointment(q.QueryRow(ctx, appointmentSelect+` WHERE a.id = $1`, id))
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	return appointmentByID(ctx, s.pool, id)
}

// ListAppointments scopes the result by role: providers see their calendar,
// patients their own bookings, admins everything. An empty status means any.
func (s *Store) ListAppointments(ctx context.Context, actor model.Actor, status model.Status) ([]model.Appointment, error) {
	q := appointmentSelect + ` WHERE TRUE`
	var args []any

	switch actor.Role {
	case model.RoleAdmin:
	case model.RoleProvider:
		args = append(args, actor.UserID)
		q += fmt.Sprintf(` AND a.provider_id = $%d`, len(args))
	default:
		args = append(args, actor.UserID)
		q += fmt.Sprintf(` AND a.requester_id = $%d`, len(args))
	}
	if status != "" {
		args = append(args, string(status))
		q += fmt.Sprintf(` AND a.status = $%d`, len(args))
	}
	q += ` ORDER BY s.starts_at`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, classify(rows.Err())
}

// HasOverlap reports whether requesterID already holds an active appointment
// whose slot intersects [start, end).
func (s *Store) HasOverlap(ctx context.Context, requesterID string, start, end time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM appointments a JOIN slots s ON s.id = a.slot_id
			WHERE a.requester_id = $1
			  AND a.status IN ('pending', 'confirmed')
			  AND s.starts_at < $3
			  AND s.ends_at > $2)`,
		requesterID, start, end,
	).Scan(&exists)
	return exists, classify(err)
}

func (t *pgTx) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	return appointmentByID(ctx, t.tx, id)
}

// InsertAppointment returns ErrSlotClaimed if an active appointment already
// references the slot.
func (t *pgTx) InsertAppointment(ctx context.Context, a *model.Appointment) error {
	err := t.tx.QueryRow(ctx,
		`INSERT INTO appointments (id, requester_id, provider_id, slot_id, status, notes)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		a.ID, a.RequesterID, a.ProviderID, a.SlotID, string(a.Status), a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	return classify(err)
}

// TransitionAppointment moves the appointment from -> to only if it is still
// in from. Losing that race is reported as ErrContention.
func (t *pgTx) TransitionAppointment(ctx context.Context, id string, from, to model.Status, actorID string) (*model.Appointment, error) {
	var cancelledBy any
	if to == model.StatusCancelled && actorID != "" {
		cancelledBy = actorID
	}
	tag, err := t.tx.Exec(ctx,
		`UPDATE appointments
		 SET status = $3, cancelled_by = COALESCE($4, cancelled_by), updated_at = NOW()
		 WHERE id = $1 AND status = $2`,
		id, string(from), string(to), cancelledBy,
	)
	if err != nil {
		return nil, classify(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: appointment %s left %s concurrently", ErrContention, id, from)
	}
	return appointmentByID(ctx, t.tx, id)
}

func (t *pgTx) CountActiveClaims(ctx context.Context, slotID string) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments
		 WHERE slot_id = $1 AND status IN ('pending', 'confirmed')`, slotID,
	).Scan(&n)
	return n, classify(err)
}
