package model

import "time"

// VisitOrder is one consumable entitlement unit drawn from an offender's
// visit balance and attached to exactly one visit.  Orders are created
// together with their visit and are never issued independently.
//
// Fields:
//  ID          – primary key identifier.
//  OrderNumber – globally unique, sequentially issued order number.
//  BookingID   – offender booking the order was issued against.
//  OrderType   – VO for a standard order, PVO for a privileged order.
//  Status      – mirrors the owning visit's status (SCH, CANC).
//  IssueDate   – date the order was issued.
//  ExpiryDate  – issue date + 28 days; moved to today on cancellation.
//  Comment     – free-text comment.
//  CreatedAt   – creation timestamp.
type VisitOrder struct {
	ID          uint64    // visit_orders.id
	OrderNumber uint64    // visit_orders.order_number
	BookingID   uint64    // visit_orders.booking_id
	OrderType   string    // visit_orders.order_type
	Status      string    // visit_orders.status
	IssueDate   time.Time // visit_orders.issue_date
	ExpiryDate  time.Time // visit_orders.expiry_date
	Comment     string    // visit_orders.comment
	CreatedAt   time.Time // visit_orders.created_at
}

// VisitOrderVisitor mirrors one of the owning visit's person-visitors on
// the order itself.  The list is rebuilt wholesale whenever the visit's
// visitor set changes; the first entry is flagged as the group leader.
//
// Fields:
//  ID          – primary key identifier.
//  OrderID     – visit order the row belongs to.
//  PersonID    – visiting person mirrored from the visit.
//  GroupLeader – true for the first visitor in list order.
type VisitOrderVisitor struct {
	ID          uint64 // visit_order_visitors.id
	OrderID     uint64 // visit_order_visitors.order_id
	PersonID    uint64 // visit_order_visitors.person_id
	GroupLeader bool   // visit_order_visitors.group_leader
}
