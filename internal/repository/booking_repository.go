package repository

import (
	"context"
	"database/sql"
)

// BookingRepo resolves offender bookings. Bookings are owned by an
// upstream custody system; this service only ever reads them.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingRecord is the subset of an offender booking this service needs
// to schedule visits against it.
type BookingRecord struct {
	ID         uint64 // offender_bookings.id
	OffenderNo string // offender_bookings.offender_no
	PrisonID   string // offender_bookings.prison_id
}

// GetActiveByOffenderNo resolves an offender number to the offender's
// active booking. When the offender has no active booking,
// sql.ErrNoRows is returned; handlers surface this as 404.
func (r *BookingRepo) GetActiveByOffenderNo(ctx context.Context, offenderNo string) (*BookingRecord, error) {
	const q = `SELECT id, offender_no, prison_id FROM offender_bookings WHERE offender_no = ? AND active = 1`
	var b BookingRecord
	if err := r.db.QueryRowContext(ctx, q, offenderNo).Scan(&b.ID, &b.OffenderNo, &b.PrisonID); err != nil {
		return nil, err
	}
	return &b, nil
}
