package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vsip/visit-sync/internal/booking"
	"github.com/vsip/visit-sync/internal/model"
)

// timeOfDay is the DB format of TIME columns.
const timeOfDay = "15:04:05"

// ScheduleRepo materializes the day/time/slot/room hierarchy a visit is
// filed under. Every step is find-or-create against a uniqueness
// constraint: a lookup that misses degrades to creation, and a creation
// that loses a race to a concurrent request (duplicate entry 1062)
// retries the lookup once instead of surfacing the error. Rows created
// here are never updated or deleted by this service.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo returns a new ScheduleRepo bound to the given database.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// ResolveSlotTx returns the scheduling slot and room for a visit at the
// given prison, start/end time and open/closed flag, creating any
// missing level of the hierarchy on the way. Calling it twice with the
// same (prison, weekday, start time, openness) yields the same slot.
func (r *ScheduleRepo) ResolveSlotTx(ctx context.Context, tx *sql.Tx, prisonID string, start, end time.Time, closed bool) (*model.ScheduledSlot, *model.VisitRoom, error) {
	weekday, err := booking.WeekdayCode(start)
	if err != nil {
		return nil, nil, err
	}
	room, err := r.findOrCreateRoomTx(ctx, tx, prisonID, closed)
	if err != nil {
		return nil, nil, err
	}
	if err := r.ensureDayTx(ctx, tx, prisonID, weekday); err != nil {
		return nil, nil, err
	}
	timeRow, err := r.findOrCreateTimeTx(ctx, tx, prisonID, weekday, start, end)
	if err != nil {
		return nil, nil, err
	}
	slot, err := r.findOrCreateSlotTx(ctx, tx, timeRow, room)
	if err != nil {
		return nil, nil, err
	}
	return slot, room, nil
}

// findOrCreateRoomTx locates the provisioned room for (prison, openness)
// by its deterministic description, creating it on first demand. When
// the prison has a pre-existing top-level visits room, the provisioned
// room nests under it; prisons with a nonstandard room hierarchy get a
// top-level room with a synthesized description.
func (r *ScheduleRepo) findOrCreateRoomTx(ctx context.Context, tx *sql.Tx, prisonID string, closed bool) (*model.VisitRoom, error) {
	var parentID *uint64
	parentDesc := ""
	const parentQ = `SELECT id, description FROM visit_rooms WHERE prison_id = ? AND code = 'VISITS' AND parent_id IS NULL`
	var pid uint64
	err := tx.QueryRowContext(ctx, parentQ, prisonID).Scan(&pid, &parentDesc)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		parentID = &pid
	}

	desc := booking.RoomDescription(prisonID, parentDesc, closed)
	room, err := r.roomByDescriptionTx(ctx, tx, desc)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	const ins = `INSERT INTO visit_rooms (prison_id, code, description, capacity, active, parent_id) VALUES (?, ?, ?, ?, 1, ?)`
	res, err := tx.ExecContext(ctx, ins, prisonID, booking.RoomCode(closed), desc, booking.ProvisionedRoomCapacity, parentID)
	if isDuplicateEntry(err) {
		return r.roomByDescriptionTx(ctx, tx, desc)
	}
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.VisitRoom{
		ID:          uint64(id),
		PrisonID:    prisonID,
		Code:        booking.RoomCode(closed),
		Description: desc,
		Capacity:    booking.ProvisionedRoomCapacity,
		Active:      true,
		ParentID:    parentID,
	}, nil
}

func (r *ScheduleRepo) roomByDescriptionTx(ctx context.Context, tx *sql.Tx, desc string) (*model.VisitRoom, error) {
	const q = `SELECT id, prison_id, code, description, capacity, active, parent_id FROM visit_rooms WHERE description = ?`
	var room model.VisitRoom
	var parent sql.NullInt64
	err := tx.QueryRowContext(ctx, q, desc).Scan(&room.ID, &room.PrisonID, &room.Code, &room.Description, &room.Capacity, &room.Active, &parent)
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		p := uint64(parent.Int64)
		room.ParentID = &p
	}
	return &room, nil
}

// ensureDayTx creates the (prison, weekday) scheduled day if it does not
// exist. Existence alone is the signal the provisioner needs, so a lost
// creation race needs no re-read.
func (r *ScheduleRepo) ensureDayTx(ctx context.Context, tx *sql.Tx, prisonID, weekday string) error {
	const q = `SELECT 1 FROM scheduled_days WHERE prison_id = ? AND weekday = ?`
	var one int
	err := tx.QueryRowContext(ctx, q, prisonID, weekday).Scan(&one)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	const ins = `INSERT INTO scheduled_days (prison_id, weekday) VALUES (?, ?)`
	if _, err := tx.ExecContext(ctx, ins, prisonID, weekday); err != nil && !isDuplicateEntry(err) {
		return err
	}
	return nil
}

// findOrCreateTimeTx locates the scheduled time for (prison, weekday,
// start time), allocating the next sequence number for the pair on
// first demand. New rows get an effective/expiry range ending the day
// before the visit so legacy recurring-schedule screens never list them.
func (r *ScheduleRepo) findOrCreateTimeTx(ctx context.Context, tx *sql.Tx, prisonID, weekday string, start, end time.Time) (*model.ScheduledTime, error) {
	startT := start.Format(timeOfDay)
	endT := end.Format(timeOfDay)

	row, err := r.timeByStartTx(ctx, tx, prisonID, weekday, startT)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	seq, err := r.nextSlotSeqTx(ctx, tx, prisonID, weekday)
	if err != nil {
		return nil, err
	}
	effective, expiry := booking.ScheduleRange(start)
	const ins = `INSERT INTO scheduled_times (prison_id, weekday, slot_seq, start_time, end_time, effective_date, expiry_date) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, prisonID, weekday, seq, startT, endT, effective, expiry)
	if isDuplicateEntry(err) {
		return r.timeByStartTx(ctx, tx, prisonID, weekday, startT)
	}
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.ScheduledTime{
		ID:            uint64(id),
		PrisonID:      prisonID,
		Weekday:       weekday,
		SlotSeq:       seq,
		StartTime:     startT,
		EndTime:       endT,
		EffectiveDate: effective,
		ExpiryDate:    expiry,
	}, nil
}

func (r *ScheduleRepo) timeByStartTx(ctx context.Context, tx *sql.Tx, prisonID, weekday, startT string) (*model.ScheduledTime, error) {
	const q = `SELECT id, prison_id, weekday, slot_seq, start_time, end_time, effective_date, expiry_date
	           FROM scheduled_times WHERE prison_id = ? AND weekday = ? AND start_time = ?`
	var t model.ScheduledTime
	err := tx.QueryRowContext(ctx, q, prisonID, weekday, startT).Scan(
		&t.ID, &t.PrisonID, &t.Weekday, &t.SlotSeq, &t.StartTime, &t.EndTime, &t.EffectiveDate, &t.ExpiryDate,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nextSlotSeqTx allocates the next sequence number for a (prison,
// weekday) pair from a dedicated counter row, locked for the duration of
// the enclosing transaction. Counter rows replace max+1 scans so two
// concurrent first-time creations cannot pick the same sequence.
func (r *ScheduleRepo) nextSlotSeqTx(ctx context.Context, tx *sql.Tx, prisonID, weekday string) (int, error) {
	const sel = `SELECT next_seq FROM slot_sequences WHERE prison_id = ? AND weekday = ? FOR UPDATE`
	var cur int
	err := tx.QueryRowContext(ctx, sel, prisonID, weekday).Scan(&cur)
	if errors.Is(err, sql.ErrNoRows) {
		const ins = `INSERT INTO slot_sequences (prison_id, weekday, next_seq) VALUES (?, ?, 1)`
		if _, insErr := tx.ExecContext(ctx, ins, prisonID, weekday); insErr != nil {
			if !isDuplicateEntry(insErr) {
				return 0, insErr
			}
			// Lost the seeding race; lock the winner's row and bump it.
			if scanErr := tx.QueryRowContext(ctx, sel, prisonID, weekday).Scan(&cur); scanErr != nil {
				return 0, scanErr
			}
			return r.bumpSlotSeqTx(ctx, tx, prisonID, weekday, cur)
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return r.bumpSlotSeqTx(ctx, tx, prisonID, weekday, cur)
}

func (r *ScheduleRepo) bumpSlotSeqTx(ctx context.Context, tx *sql.Tx, prisonID, weekday string, cur int) (int, error) {
	const upd = `UPDATE slot_sequences SET next_seq = ? WHERE prison_id = ? AND weekday = ?`
	if _, err := tx.ExecContext(ctx, upd, cur+1, prisonID, weekday); err != nil {
		return 0, err
	}
	return cur + 1, nil
}

// findOrCreateSlotTx locates the slot linking a scheduled time to a
// room, creating it on first demand. The (room description, start time,
// weekday) uniqueness key collapses to (time_id, room_id) because both
// referenced rows are themselves unique on those attributes.
func (r *ScheduleRepo) findOrCreateSlotTx(ctx context.Context, tx *sql.Tx, timeRow *model.ScheduledTime, room *model.VisitRoom) (*model.ScheduledSlot, error) {
	slot, err := r.slotByTimeAndRoomTx(ctx, tx, timeRow.ID, room.ID)
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	const ins = `INSERT INTO scheduled_slots (prison_id, time_id, weekday, slot_seq, room_id, capacity) VALUES (?, ?, ?, ?, ?, 0)`
	res, err := tx.ExecContext(ctx, ins, timeRow.PrisonID, timeRow.ID, timeRow.Weekday, timeRow.SlotSeq, room.ID)
	if isDuplicateEntry(err) {
		return r.slotByTimeAndRoomTx(ctx, tx, timeRow.ID, room.ID)
	}
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.ScheduledSlot{
		ID:       uint64(id),
		PrisonID: timeRow.PrisonID,
		TimeID:   timeRow.ID,
		Weekday:  timeRow.Weekday,
		SlotSeq:  timeRow.SlotSeq,
		RoomID:   room.ID,
	}, nil
}

func (r *ScheduleRepo) slotByTimeAndRoomTx(ctx context.Context, tx *sql.Tx, timeID, roomID uint64) (*model.ScheduledSlot, error) {
	const q = `SELECT id, prison_id, time_id, weekday, slot_seq, room_id, capacity FROM scheduled_slots WHERE time_id = ? AND room_id = ?`
	var s model.ScheduledSlot
	err := tx.QueryRowContext(ctx, q, timeID, roomID).Scan(&s.ID, &s.PrisonID, &s.TimeID, &s.Weekday, &s.SlotSeq, &s.RoomID, &s.Capacity)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
