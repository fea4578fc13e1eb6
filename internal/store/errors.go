package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrSlotClaimed means the partial unique index on active appointments
	// rejected an insert: another claim on the slot committed first.
	ErrSlotClaimed = errors.New("slot already claimed")
	ErrDuplicate   = errors.New("duplicate")
	ErrOverlap     = errors.New("overlaps an existing slot")
	// ErrContention covers lock timeouts, deadlocks, serialization failures
	// and optimistic updates that lost to a concurrent writer. Safe to retry.
	ErrContention = errors.New("storage contention")
)

const activeClaimIndex = "appointments_one_active_per_slot"

// classify maps driver errors onto the package sentinels, keeping the
// original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		if pgErr.ConstraintName == activeClaimIndex {
			return fmt.Errorf("%w: %w", ErrSlotClaimed, err)
		}
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case "23P01":
		return fmt.Errorf("%w: %w", ErrOverlap, err)
	case "23503":
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case "40001", "40P01", "55P03":
		return fmt.Errorf("%w: %w", ErrContention, err)
	}
	return err
}
