package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vsip/visit-sync/internal/model"
)

// VisitRepo persists visits. Visits are created in SCH status, move to
// CANC exactly once, have their timing/room rewritten by updates while
// scheduled, and are never physically deleted by this service.
type VisitRepo struct {
	db *sql.DB
}

// NewVisitRepo returns a new VisitRepo bound to the given database.
func NewVisitRepo(db *sql.DB) *VisitRepo { return &VisitRepo{db: db} }

// DB exposes the underlying sql.DB. It allows handlers to begin
// transactions spanning multiple repositories.
func (r *VisitRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts a new visit and populates the generated id on the
// provided visit.
func (r *VisitRepo) CreateTx(ctx context.Context, tx *sql.Tx, v *model.Visit) error {
	const q = `INSERT INTO visits
	           (booking_id, prison_id, visit_date, start_time, end_time, visit_type, status, room_id, slot_id, order_id, source_room, comment)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		v.BookingID, v.PrisonID, v.VisitDate, v.StartTime, v.EndTime, v.VisitType,
		v.Status, v.RoomID, v.SlotID, v.OrderID, v.SourceRoom, v.Comment,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByIDTx loads one visit inside the caller's transaction, locking the
// row so a concurrent cancel and update of the same visit serialize.
// Returns sql.ErrNoRows when the visit does not exist.
func (r *VisitRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, visitID uint64) (*model.Visit, error) {
	const q = `SELECT id, booking_id, prison_id, visit_date, start_time, end_time, visit_type, status, room_id, slot_id, order_id, source_room, comment, created_at, updated_at
	           FROM visits WHERE id = ? FOR UPDATE`
	var v model.Visit
	var orderID sql.NullInt64
	err := tx.QueryRowContext(ctx, q, visitID).Scan(
		&v.ID, &v.BookingID, &v.PrisonID, &v.VisitDate, &v.StartTime, &v.EndTime, &v.VisitType,
		&v.Status, &v.RoomID, &v.SlotID, &orderID, &v.SourceRoom, &v.Comment, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if orderID.Valid {
		oid := uint64(orderID.Int64)
		v.OrderID = &oid
	}
	return &v, nil
}

// UpdateScheduleTx rewrites a visit's timing, room and slot. The status,
// booking, type and order linkage are not touched by updates.
func (r *VisitRepo) UpdateScheduleTx(ctx context.Context, tx *sql.Tx, visitID uint64, visitDate, start, end time.Time, roomID, slotID uint64) error {
	const q = `UPDATE visits SET visit_date = ?, start_time = ?, end_time = ?, room_id = ?, slot_id = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, visitDate, start, end, roomID, slotID, visitID)
	return err
}

// CancelTx marks a visit cancelled. The status guard lives with the
// caller; this method only performs the write.
func (r *VisitRepo) CancelTx(ctx context.Context, tx *sql.Tx, visitID uint64) error {
	const q = `UPDATE visits SET status = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, model.StatusCancelled, visitID)
	return err
}
