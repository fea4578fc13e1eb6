package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"appointment-booking-api/internal/model"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const slotColumns = `id, provider_id, starts_at, ends_at, is_available, created_at, updated_at`

func scanSlot(row pgx.Row) (*model.Slot, error) {
	sl := &model.Slot{}
	err := row.Scan(&sl.ID, &sl.ProviderID, &sl.Start, &sl.End, &sl.Available, &sl.CreatedAt, &sl.UpdatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return sl, nil
}

func slotByID(ctx context.Context, q querier, id string) (*model.Slot, error) {
	return scanSlot(q.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id))
}

func (s *Store) GetSlot(ctx context.Context, id string) (*model.Slot, error) {
	return slotByID(ctx, s.pool, id)
}

// CreateSlot fails with ErrOverlap when the provider already has a slot
// intersecting [Start, End).
func (s *Store) CreateSlot(ctx context.Context, sl *model.Slot) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO slots (id, provider_id, starts_at, ends_at, is_available)
		 VALUES ($1,$2,$3,$4,TRUE)
		 RETURNING is_available, created_at, updated_at`,
		sl.ID, sl.ProviderID, sl.Start, sl.End,
	).Scan(&sl.Available, &sl.CreatedAt, &sl.UpdatedAt)
	return classify(err)
}

func (s *Store) ListSlots(ctx context.Context, providerID string, from, to time.Time, onlyAvailable bool) ([]model.Slot, error) {
	q := `SELECT ` + slotColumns + ` FROM slots
		 WHERE provider_id = $1 AND starts_at >= $2 AND ends_at <= $3`
	if onlyAvailable {
		q += ` AND is_available`
	}
	q += ` ORDER BY starts_at`

	rows, err := s.pool.Query(ctx, q, providerID, from, to)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []model.Slot
	for rows.Next() {
		sl, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sl)
	}
	return out, classify(rows.Err())
}

func (t *pgTx) SlotByID(ctx context.Context, id string) (*model.Slot, error) {
	return slotByID(ctx, t.tx, id)
}

// SetSlotAvailability returns the value as written by this transaction.
func (t *pgTx) SetSlotAvailability(ctx context.Context, id string, available bool) (bool, error) {
	var got bool
	err := t.tx.QueryRow(ctx,
		`UPDATE slots SET is_available = $2, updated_at = NOW()
		 WHERE id = $1 RETURNING is_available`, id, available,
	).Scan(&got)
	if err != nil {
		return false, classify(err)
	}
	return got, nil
}
