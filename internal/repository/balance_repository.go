package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vsip/visit-sync/internal/model"
)

// BalanceRepo reads visit-order balances and appends adjustment ledger
// entries. The live counters are maintained by an external folding
// process that replays the ledger; this repo never writes them, and a
// balance read is always treated as a snapshot.
type BalanceRepo struct {
	db *sql.DB
}

// NewBalanceRepo returns a new BalanceRepo bound to the given database.
func NewBalanceRepo(db *sql.DB) *BalanceRepo { return &BalanceRepo{db: db} }

// GetByBookingTx returns the booking's balance snapshot, or nil when the
// booking has no balance row. Absence is not an error: offenders
// without a balance record are allowed visits with no entitlement
// consumed.
func (r *BalanceRepo) GetByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (*model.VisitBalance, error) {
	const q = `SELECT booking_id, remaining_vo, remaining_pvo FROM offender_visit_balances WHERE booking_id = ?`
	var b model.VisitBalance
	err := tx.QueryRowContext(ctx, q, bookingID).Scan(&b.BookingID, &b.RemainingVO, &b.RemainingPVO)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// AppendAdjustmentTx appends one immutable ledger entry and populates
// the generated id on the given adjustment. Entries are never updated
// or deleted once written.
func (r *BalanceRepo) AppendAdjustmentTx(ctx context.Context, tx *sql.Tx, adj *model.BalanceAdjustment) error {
	const q = `INSERT INTO visit_balance_adjustments
	           (booking_id, order_id, adjust_date, reason_code, vo_delta, pvo_delta, previous_vo, previous_pvo, comment)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		adj.BookingID, adj.OrderID, adj.AdjustDate, adj.ReasonCode,
		adj.VODelta, adj.PVODelta, adj.PreviousVO, adj.PreviousPVO, adj.Comment,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	adj.ID = uint64(id)
	return nil
}

// IssueAdjustmentTx returns the adjustment written when the given order
// was issued. Cancellation uses its previous-value snapshot on the
// reversing entry instead of re-reading the live balance.
func (r *BalanceRepo) IssueAdjustmentTx(ctx context.Context, tx *sql.Tx, orderID uint64) (*model.BalanceAdjustment, error) {
	const q = `SELECT id, booking_id, order_id, adjust_date, reason_code, vo_delta, pvo_delta, previous_vo, previous_pvo, comment
	           FROM visit_balance_adjustments
	           WHERE order_id = ? AND reason_code IN (?, ?)
	           ORDER BY id LIMIT 1`
	var adj model.BalanceAdjustment
	var oid sql.NullInt64
	var prevVO, prevPVO sql.NullInt32
	err := tx.QueryRowContext(ctx, q, orderID, model.ReasonVOIssue, model.ReasonPVOIssue).Scan(
		&adj.ID, &adj.BookingID, &oid, &adj.AdjustDate, &adj.ReasonCode,
		&adj.VODelta, &adj.PVODelta, &prevVO, &prevPVO, &adj.Comment,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if oid.Valid {
		v := uint64(oid.Int64)
		adj.OrderID = &v
	}
	if prevVO.Valid {
		v := prevVO.Int32
		adj.PreviousVO = &v
	}
	if prevPVO.Valid {
		v := prevPVO.Int32
		adj.PreviousPVO = &v
	}
	return &adj, nil
}
