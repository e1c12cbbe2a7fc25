package model

import "time"

// ScheduledDay marks that a prison has at least one configured visit
// slot on a given weekday.  Existence is the only attribute; rows are
// created on first demand and never updated or deleted.
//
// Fields:
//  PrisonID – prison the day belongs to.
//  Weekday  – weekday code (MON..SUN).
type ScheduledDay struct {
	PrisonID string // scheduled_days.prison_id
	Weekday  string // scheduled_days.weekday
}

// ScheduledTime is one recurring time-of-day entry under a scheduled
// day.  Its effective/expiry range is deliberately set entirely in the
// past so legacy recurring-schedule screens never show it, while the
// row remains usable as a foreign-key target for visit slots.
//
// Fields:
//  ID            – primary key identifier.
//  PrisonID      – prison the time belongs to.
//  Weekday       – weekday code (MON..SUN).
//  SlotSeq       – sequence number, unique per (prison, weekday).
//  StartTime     – time of day the slot starts ("HH:MM:SS", as stored).
//  EndTime       – time of day the slot ends ("HH:MM:SS", as stored).
//  EffectiveDate – start of the (past) validity range.
//  ExpiryDate    – end of the (past) validity range.
type ScheduledTime struct {
	ID            uint64    // scheduled_times.id
	PrisonID      string    // scheduled_times.prison_id
	Weekday       string    // scheduled_times.weekday
	SlotSeq       int       // scheduled_times.slot_seq
	StartTime     string    // scheduled_times.start_time (TIME column)
	EndTime       string    // scheduled_times.end_time (TIME column)
	EffectiveDate time.Time // scheduled_times.effective_date
	ExpiryDate    time.Time // scheduled_times.expiry_date
}

// ScheduledSlot links a scheduled time to a visit room.  Capacity
// fields are placeholders; real capacity is not tracked here.
// Uniqueness key: (room, start time, weekday), enforced through the
// referenced time and room rows.
//
// Fields:
//  ID       – primary key identifier.
//  PrisonID – prison the slot belongs to.
//  TimeID   – scheduled time the slot is attached to.
//  Weekday  – weekday code, copied from the scheduled time.
//  SlotSeq  – sequence number, copied from the scheduled time.
//  RoomID   – visit room the slot is held in.
//  Capacity – placeholder capacity, always zero.
type ScheduledSlot struct {
	ID       uint64 // scheduled_slots.id
	PrisonID string // scheduled_slots.prison_id
	TimeID   uint64 // scheduled_slots.time_id
	Weekday  string // scheduled_slots.weekday
	SlotSeq  int    // scheduled_slots.slot_seq
	RoomID   uint64 // scheduled_slots.room_id
	Capacity int    // scheduled_slots.capacity
}

// VisitRoom is a provisioned location a visit slot is attached to.
// Rooms are looked up by exact description before creation and never
// updated afterwards.
//
// Fields:
//  ID          – primary key identifier.
//  PrisonID    – prison the room belongs to.
//  Code        – generated code (VSIP_SOC for open, VSIP_CLO for closed).
//  Description – unique description used for lookup.
//  Capacity    – nominal capacity (99 for provisioned rooms).
//  Active      – whether the room is usable.
//  ParentID    – the prison's top-level visits room, when nested.
type VisitRoom struct {
	ID          uint64  // visit_rooms.id
	PrisonID    string  // visit_rooms.prison_id
	Code        string  // visit_rooms.code
	Description string  // visit_rooms.description
	Capacity    int     // visit_rooms.capacity
	Active      bool    // visit_rooms.active
	ParentID    *uint64 // visit_rooms.parent_id (nullable)
}
