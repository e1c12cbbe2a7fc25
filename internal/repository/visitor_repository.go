package repository

import (
	"context"
	"database/sql"

	"github.com/vsip/visit-sync/internal/model"
)

// VisitorRepo persists a visit's visitor list: one person-less
// status-tracking row per visit plus one row per visiting person.
type VisitorRepo struct {
	db *sql.DB
}

// NewVisitorRepo returns a new VisitorRepo bound to the given database.
func NewVisitorRepo(db *sql.DB) *VisitorRepo { return &VisitorRepo{db: db} }

// CreateStatusRowTx inserts the person-less status-tracking row for a
// visit. The row carries the visit's monotonic event id and mirrors the
// visit's own status; it is created exactly once per visit and never
// removed by reconciliation.
func (r *VisitorRepo) CreateStatusRowTx(ctx context.Context, tx *sql.Tx, visitID, eventID uint64, eventStatus string) error {
	const q = `INSERT INTO visit_visitors (visit_id, person_id, event_id, event_status, group_leader) VALUES (?, NULL, ?, ?, 0)`
	_, err := tx.ExecContext(ctx, q, visitID, eventID, eventStatus)
	return err
}

// AddPersonsTx inserts one visitor row per person id, all with the given
// event status, preserving the order of personIDs. Passing an empty
// slice has no effect and returns nil.
func (r *VisitorRepo) AddPersonsTx(ctx context.Context, tx *sql.Tx, visitID uint64, personIDs []uint64, eventStatus string) error {
	if len(personIDs) == 0 {
		return nil
	}
	query := `INSERT INTO visit_visitors (visit_id, person_id, event_status, group_leader) VALUES `
	args := make([]interface{}, 0, len(personIDs)*3)
	for i, pid := range personIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, 0)"
		args = append(args, visitID, pid, eventStatus)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListByVisitTx returns all visitor rows of a visit in insertion order,
// the status-tracking row included.
func (r *VisitorRepo) ListByVisitTx(ctx context.Context, tx *sql.Tx, visitID uint64) ([]model.VisitVisitor, error) {
	const q = `SELECT id, visit_id, person_id, event_id, event_status, event_outcome, outcome_reason, group_leader
	           FROM visit_visitors WHERE visit_id = ? ORDER BY id`
	rows, err := tx.QueryContext(ctx, q, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.VisitVisitor
	for rows.Next() {
		var v model.VisitVisitor
		var personID, eventID sql.NullInt64
		var outcome, reason sql.NullString
		if err := rows.Scan(&v.ID, &v.VisitID, &personID, &eventID, &v.EventStatus, &outcome, &reason, &v.GroupLeader); err != nil {
			return nil, err
		}
		if personID.Valid {
			p := uint64(personID.Int64)
			v.PersonID = &p
		}
		if eventID.Valid {
			e := uint64(eventID.Int64)
			v.EventID = &e
		}
		if outcome.Valid {
			o := outcome.String
			v.EventOutcome = &o
		}
		if reason.Valid {
			rc := reason.String
			v.OutcomeReason = &rc
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// StatusRowTx returns the visit's person-less status-tracking row.
// Returns sql.ErrNoRows when the row is missing, which indicates a
// corrupt visit: every visit is created with exactly one such row.
func (r *VisitorRepo) StatusRowTx(ctx context.Context, tx *sql.Tx, visitID uint64) (*model.VisitVisitor, error) {
	const q = `SELECT id, visit_id, event_id, event_status FROM visit_visitors WHERE visit_id = ? AND person_id IS NULL`
	var v model.VisitVisitor
	var eventID sql.NullInt64
	err := tx.QueryRowContext(ctx, q, visitID).Scan(&v.ID, &v.VisitID, &eventID, &v.EventStatus)
	if err != nil {
		return nil, err
	}
	if eventID.Valid {
		e := uint64(eventID.Int64)
		v.EventID = &e
	}
	return &v, nil
}

// DeleteTx removes the given visitor rows by id. Passing an empty slice
// has no effect and returns nil.
func (r *VisitorRepo) DeleteTx(ctx context.Context, tx *sql.Tx, rowIDs []uint64) error {
	if len(rowIDs) == 0 {
		return nil
	}
	query := `DELETE FROM visit_visitors WHERE id IN (`
	args := make([]interface{}, 0, len(rowIDs))
	for i, id := range rowIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// CancelAllTx marks every visitor row of a visit cancelled: event status
// CANC, attendance outcome ABS, and the supplied cancellation reason.
// The status-tracking row is included so it keeps mirroring the visit.
func (r *VisitorRepo) CancelAllTx(ctx context.Context, tx *sql.Tx, visitID uint64, outcome, reasonCode string) error {
	const q = `UPDATE visit_visitors SET event_status = ?, event_outcome = ?, outcome_reason = ? WHERE visit_id = ?`
	_, err := tx.ExecContext(ctx, q, model.StatusCancelled, outcome, reasonCode, visitID)
	return err
}
