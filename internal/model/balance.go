package model

import "time"

// VisitBalance holds the per-booking entitlement counters.  The counters
// are maintained by an external folding process that replays the
// adjustment ledger; this service only ever reads them as a snapshot.
//
// Fields:
//  BookingID    – offender booking the balance belongs to.
//  RemainingVO  – remaining standard visit orders.
//  RemainingPVO – remaining privileged visit orders.
type VisitBalance struct {
	BookingID    uint64 // offender_visit_balances.booking_id
	RemainingVO  int32  // offender_visit_balances.remaining_vo
	RemainingPVO int32  // offender_visit_balances.remaining_pvo
}

// BalanceAdjustment is one immutable entry of the visit-order ledger.
// Every order allocation appends exactly one entry with a -1 delta on
// the counter it draws from; every reversal appends exactly one entry
// with a +1 delta on the same counter.  Entries are never updated.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – offender booking the adjustment applies to.
//  OrderID       – visit order that caused the adjustment, if any.
//  AdjustDate    – effective date of the adjustment.
//  ReasonCode    – VO_ISSUE, PVO_ISSUE, VO_CANCEL or PVO_CANCEL.
//  VODelta       – signed change to the standard counter.
//  PVODelta      – signed change to the privileged counter.
//  PreviousVO    – snapshot of the standard counter, when affected.
//  PreviousPVO   – snapshot of the privileged counter, when affected.
//  Comment       – free-text comment.
//  CreatedAt     – creation timestamp.
type BalanceAdjustment struct {
	ID          uint64    // visit_balance_adjustments.id
	BookingID   uint64    // visit_balance_adjustments.booking_id
	OrderID     *uint64   // visit_balance_adjustments.order_id (nullable)
	AdjustDate  time.Time // visit_balance_adjustments.adjust_date
	ReasonCode  string    // visit_balance_adjustments.reason_code
	VODelta     int32     // visit_balance_adjustments.vo_delta
	PVODelta    int32     // visit_balance_adjustments.pvo_delta
	PreviousVO  *int32    // visit_balance_adjustments.previous_vo (nullable)
	PreviousPVO *int32    // visit_balance_adjustments.previous_pvo (nullable)
	Comment     string    // visit_balance_adjustments.comment
	CreatedAt   time.Time // visit_balance_adjustments.created_at
}
