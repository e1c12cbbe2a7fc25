package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Named sequences maintained in the sequence_numbers table. Event ids
// and visit order numbers must be monotonic across the whole estate, so
// they are allocated from dedicated counter rows rather than derived
// from table maxima.
const (
	seqEventID     = "EVENT_ID"
	seqOrderNumber = "VISIT_ORDER_NUMBER"
)

// SequenceRepo hands out monotonic identifiers from named counter rows.
// Allocation happens inside the caller's transaction: the counter row is
// locked, bumped and read, so two concurrent requests can never observe
// the same value.
type SequenceRepo struct {
	db *sql.DB
}

// NewSequenceRepo returns a new SequenceRepo bound to the given database.
func NewSequenceRepo(db *sql.DB) *SequenceRepo { return &SequenceRepo{db: db} }

// NextEventIDTx allocates the next monotonic event id.
func (r *SequenceRepo) NextEventIDTx(ctx context.Context, tx *sql.Tx) (uint64, error) {
	return r.nextTx(ctx, tx, seqEventID)
}

// NextOrderNumberTx allocates the next visit order number.
func (r *SequenceRepo) NextOrderNumberTx(ctx context.Context, tx *sql.Tx) (uint64, error) {
	return r.nextTx(ctx, tx, seqOrderNumber)
}

func (r *SequenceRepo) nextTx(ctx context.Context, tx *sql.Tx, name string) (uint64, error) {
	const upd = `UPDATE sequence_numbers SET next_val = next_val + 1 WHERE name = ?`
	res, err := tx.ExecContext(ctx, upd, name)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("sequence %q is not seeded", name)
	}
	const sel = `SELECT next_val FROM sequence_numbers WHERE name = ?`
	var val uint64
	if err := tx.QueryRowContext(ctx, sel, name).Scan(&val); err != nil {
		return 0, err
	}
	return val, nil
}
