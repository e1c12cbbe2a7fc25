package model

// Reference code domains and the fixed codes this service depends on.
// The SCH/CANC/ABS seed codes are expected to always exist; a missing
// seed code is treated as a fatal data problem, not caller error.
const (
	DomainVisitType    = "VIS_TYPE"     // SCON (social), OFFI (official)
	DomainVisitStatus  = "VIS_STS"      // SCH, CANC
	DomainOutcomeRsn   = "MOVE_CANC_RS" // cancellation outcome reasons (VISCANC, ADMIN, ...)
	DomainEventOutcome = "OUTCOMES"     // attendance outcomes (ABS, ATT)
	DomainAdjustReason = "ADJ_RSN"      // balance adjustment reasons
)

const (
	StatusScheduled = "SCH"
	StatusCancelled = "CANC"
	OutcomeAbsent   = "ABS"

	OrderTypeStandard   = "VO"
	OrderTypePrivileged = "PVO"

	ReasonVOIssue   = "VO_ISSUE"
	ReasonPVOIssue  = "PVO_ISSUE"
	ReasonVOCancel  = "VO_CANCEL"
	ReasonPVOCancel = "PVO_CANCEL"
)

// ReferenceCode maps a (domain, code) pair to a description and an
// active flag.  Codes supplied by callers must resolve to an active
// row before they are used.
//
// Fields:
//  Domain      – code domain (VIS_TYPE, VIS_STS, MOVE_CANC_RS, ...).
//  Code        – business code inside the domain.
//  Description – human-readable description.
//  Active      – whether the code is currently usable.
type ReferenceCode struct {
	Domain      string // reference_codes.domain
	Code        string // reference_codes.code
	Description string // reference_codes.description
	Active      bool   // reference_codes.active
}

// OffenderBooking is the custodial episode a visit is scheduled
// against.  Bookings are owned by an upstream system; this service
// resolves them read-only by offender number.
//
// Fields:
//  ID         – primary key identifier.
//  OffenderNo – offender display number used by callers.
//  PrisonID   – prison the booking is currently held at.
//  Active     – whether the booking is the offender's active episode.
type OffenderBooking struct {
	ID         uint64 // offender_bookings.id
	OffenderNo string // offender_bookings.offender_no
	PrisonID   string // offender_bookings.prison_id
	Active     bool   // offender_bookings.active
}

// Prison identifies one establishment in the estate.
type Prison struct {
	ID   string // prisons.id
	Name string // prisons.name
}

// Person identifies one visitor known to the legacy system.
type Person struct {
	ID        uint64 // persons.id
	FirstName string // persons.first_name
	LastName  string // persons.last_name
}
