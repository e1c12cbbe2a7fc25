package booking

import "time"

// Generated room codes for provisioned visit rooms.  Closed visits are
// held in a separate room from open ones so the two form distinct slot
// uniqueness keys.
const (
	RoomCodeOpen   = "VSIP_SOC"
	RoomCodeClosed = "VSIP_CLO"
)

// RoomCode returns the generated location code for a provisioned room.
func RoomCode(closed bool) string {
	if closed {
		return RoomCodeClosed
	}
	return RoomCodeOpen
}

// RoomDescription builds the unique description a provisioned room is
// looked up by.  When the prison already has a top-level visits room,
// its description is used as the prefix so the provisioned room nests
// under it; otherwise the prefix is synthesized from the prison id.
func RoomDescription(prisonID, parentDescription string, closed bool) string {
	prefix := parentDescription
	if prefix == "" {
		prefix = prisonID + "-VISITS"
	}
	return prefix + "-" + RoomCode(closed)
}

// ProvisionedRoomCapacity is the nominal capacity assigned to rooms this
// service creates.  The value is not used for any availability checks.
const ProvisionedRoomCapacity = 99

// ScheduleRange returns the effective and expiry dates for a newly
// created scheduled time.  Both dates fall on the day before the visit
// so the row never shows up as an active recurring slot in legacy
// scheduling screens, while remaining a valid foreign-key target.
func ScheduleRange(visitDate time.Time) (effective, expiry time.Time) {
	day := time.Date(visitDate.Year(), visitDate.Month(), visitDate.Day(), 0, 0, 0, 0, visitDate.Location())
	prev := day.AddDate(0, 0, -1)
	return prev, prev
}
