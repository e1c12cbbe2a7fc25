package model

import "time"

// Visit records one scheduled attendance event for an offender booking.
// A visit is always filed under a provisioned scheduling slot and room,
// and may hold a consumable visit order issued at creation time.
//
// Fields:
//  ID           – primary key identifier.
//  BookingID    – offender booking the visit belongs to.
//  PrisonID     – prison where the visit takes place.
//  VisitDate    – calendar date of the visit.
//  StartTime    – when the visit begins.
//  EndTime      – when the visit ends (must be after StartTime).
//  VisitType    – reference code for the visit type (SCON, OFFI).
//  Status       – state of the visit (SCH, CANC).
//  RoomID       – provisioned visit room.
//  SlotID       – provisioned scheduling slot.
//  OrderID      – visit order consumed by this visit, if any.
//  SourceRoom   – room label supplied by the caller; informational only.
//  Comment      – free-text comment supplied by the caller.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Visit struct {
	ID         uint64    // visits.id
	BookingID  uint64    // visits.booking_id
	PrisonID   string    // visits.prison_id
	VisitDate  time.Time // visits.visit_date
	StartTime  time.Time // visits.start_time
	EndTime    time.Time // visits.end_time
	VisitType  string    // visits.visit_type
	Status     string    // visits.status
	RoomID     uint64    // visits.room_id
	SlotID     uint64    // visits.slot_id
	OrderID    *uint64   // visits.order_id (nullable)
	SourceRoom string    // visits.source_room
	Comment    string    // visits.comment
	CreatedAt  time.Time // visits.created_at
	UpdatedAt  time.Time // visits.updated_at
}

// VisitVisitor is one row of a visit's visitor list.  Every visit has
// exactly one person-less row carrying the visit's own event id and
// outcome mirror; all other rows reference a person.
//
// Fields:
//  ID            – primary key identifier.
//  VisitID       – visit the row belongs to.
//  PersonID      – visiting person; nil for the status-tracking row.
//  EventID       – monotonic event id; set only on the status-tracking row.
//  EventStatus   – event status for this row (SCH, CANC).
//  EventOutcome  – attendance outcome (ABS after cancellation).
//  OutcomeReason – reference code explaining the outcome, if any.
//  GroupLeader   – true for the lead visitor of the group.
type VisitVisitor struct {
	ID            uint64  // visit_visitors.id
	VisitID       uint64  // visit_visitors.visit_id
	PersonID      *uint64 // visit_visitors.person_id (nullable)
	EventID       *uint64 // visit_visitors.event_id (nullable)
	EventStatus   string  // visit_visitors.event_status
	EventOutcome  *string // visit_visitors.event_outcome (nullable)
	OutcomeReason *string // visit_visitors.outcome_reason (nullable)
	GroupLeader   bool    // visit_visitors.group_leader
}
