package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vsip/visit-sync/internal/model"
)

// OrderRepo persists visit orders and their mirrored visitor lists.
// Orders are created together with their visit and only ever change on
// cancellation (status + expiry) or when the visitor list is rebuilt.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateTx inserts a new visit order and populates the generated id on
// the provided order.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.VisitOrder) error {
	const q = `INSERT INTO visit_orders (order_number, booking_id, order_type, status, issue_date, expiry_date, comment)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, o.OrderNumber, o.BookingID, o.OrderType, o.Status, o.IssueDate, o.ExpiryDate, o.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// GetByIDTx loads one visit order. Returns sql.ErrNoRows when absent.
func (r *OrderRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, orderID uint64) (*model.VisitOrder, error) {
	const q = `SELECT id, order_number, booking_id, order_type, status, issue_date, expiry_date, comment, created_at
	           FROM visit_orders WHERE id = ?`
	var o model.VisitOrder
	err := tx.QueryRowContext(ctx, q, orderID).Scan(
		&o.ID, &o.OrderNumber, &o.BookingID, &o.OrderType, &o.Status, &o.IssueDate, &o.ExpiryDate, &o.Comment, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CancelTx marks an order cancelled and moves its expiry to the given
// date (today, for requester-driven cancellation). Type, issue date and
// order number are never touched after creation.
func (r *OrderRepo) CancelTx(ctx context.Context, tx *sql.Tx, orderID uint64, expiry time.Time) error {
	const q = `UPDATE visit_orders SET status = ?, expiry_date = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, model.StatusCancelled, expiry, orderID)
	return err
}

// ReplaceVisitorsTx clears and rebuilds an order's visitor list in a
// single pass. This is deliberately a destructive rebuild, not a diff:
// the order list must mirror the visit's person-visitors in list order
// with the first entry flagged as group leader.
func (r *OrderRepo) ReplaceVisitorsTx(ctx context.Context, tx *sql.Tx, orderID uint64, visitors []model.VisitOrderVisitor) error {
	const del = `DELETE FROM visit_order_visitors WHERE order_id = ?`
	if _, err := tx.ExecContext(ctx, del, orderID); err != nil {
		return err
	}
	if len(visitors) == 0 {
		return nil
	}
	query := `INSERT INTO visit_order_visitors (order_id, person_id, group_leader) VALUES `
	args := make([]interface{}, 0, len(visitors)*3)
	for i, v := range visitors {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, orderID, v.PersonID, v.GroupLeader)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
