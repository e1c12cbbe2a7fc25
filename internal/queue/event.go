// Package queue defines message payloads exchanged over the message broker.
package queue

// VisitBookedEvent is published when a visit is successfully created.
// It carries enough information for downstream consumers (case
// management, notifications, audit) to act without querying the primary
// database. OrderNumber is zero when the visit was booked without
// consuming an entitlement order.
type VisitBookedEvent struct {
	VisitID     uint64   `json:"visit_id"`
	OffenderNo  string   `json:"offender_no"`
	BookingID   uint64   `json:"booking_id"`
	PrisonID    string   `json:"prison_id"`
	VisitType   string   `json:"visit_type"`
	StartsAt    string   `json:"starts_at"`
	EndsAt      string   `json:"ends_at"`
	Room        string   `json:"room"`
	OrderNumber uint64   `json:"order_number,omitempty"`
	OrderType   string   `json:"order_type,omitempty"`
	VisitorIDs  []uint64 `json:"visitor_ids"`
	BookedAt    string   `json:"booked_at"`
}

// VisitCancelledEvent is published when a scheduled visit is cancelled.
type VisitCancelledEvent struct {
	VisitID       uint64 `json:"visit_id"`
	OffenderNo    string `json:"offender_no"`
	BookingID     uint64 `json:"booking_id"`
	PrisonID      string `json:"prison_id"`
	OutcomeReason string `json:"outcome_reason"`
	CancelledAt   string `json:"cancelled_at"`
}
