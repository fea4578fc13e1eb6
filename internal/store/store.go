package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"appointment-booking-api/internal/model"
)

type Store struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// New wraps pool. lockTimeout bounds how long a transaction waits on a row or
// index lock before failing with ErrContention; zero leaves the server default.
func New(pool *pgxpool.Pool, lockTimeout time.Duration) *Store {
	return &Store{pool: pool, lockTimeout: lockTimeout}
}

// Tx is the set of writes that must happen inside one transaction.
type Tx interface {
	SlotByID(ctx context.Context, id string) (*model.Slot, error)
	SetSlotAvailability(ctx context.Context, id string, available bool) (bool, error)
	InsertAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	TransitionAppointment(ctx context.Context, id string, from, to model.Status, actorID string) (*model.Appointment, error)
	CountActiveClaims(ctx context.Context, slotID string) (int, error)
}

// InTx runs fn in a single READ COMMITTED transaction and commits if fn
// returns nil.
func (s *Store) InTx(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return classify(err)
	}
	defer tx.Rollback(ctx)

	if s.lockTimeout > 0 {
		ms := fmt.Sprintf("%dms", s.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, ms); err != nil {
			return classify(err)
		}
	}

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	return classify(tx.Commit(ctx))
}

type pgTx struct {
	tx pgx.Tx
}

var _ Tx = (*pgTx)(nil)
