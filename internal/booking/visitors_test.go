package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsip/visit-sync/internal/booking"
	"github.com/vsip/visit-sync/internal/model"
)

func pid(v uint64) *uint64 { return &v }

func visitorRows(personIDs ...uint64) []model.VisitVisitor {
	// Row 1 is always the person-less status tracker, person rows follow.
	eventID := uint64(900)
	rows := []model.VisitVisitor{
		{ID: 1, VisitID: 10, EventID: &eventID, EventStatus: model.StatusScheduled},
	}
	for i, p := range personIDs {
		rows = append(rows, model.VisitVisitor{ID: uint64(i + 2), VisitID: 10, PersonID: pid(p)})
	}
	return rows
}

func TestVisitorDelta_AddAndRemove(t *testing.T) {
	// GIVEN: visitors 100 and 200; WHEN: request asks for 200 and 300
	toAdd, toRemove := booking.VisitorDelta(visitorRows(100, 200), []uint64{200, 300})

	assert.Equal(t, []uint64{300}, toAdd)
	// 100 sits in row id 2; removal is by row id
	assert.Equal(t, []uint64{2}, toRemove)
}

func TestVisitorDelta_NoChange(t *testing.T) {
	toAdd, toRemove := booking.VisitorDelta(visitorRows(100, 200), []uint64{100, 200})
	assert.Empty(t, toAdd)
	assert.Empty(t, toRemove)
}

func TestVisitorDelta_StatusRowNeverRemoved(t *testing.T) {
	// WHEN: the request empties the visitor list
	toAdd, toRemove := booking.VisitorDelta(visitorRows(100, 200), nil)

	assert.Empty(t, toAdd)
	// Both person rows go; the status row (id 1) is untouchable
	assert.Equal(t, []uint64{2, 3}, toRemove)
	assert.NotContains(t, toRemove, uint64(1))
}

func TestVisitorDelta_IgnoresZeroAndDuplicateRequests(t *testing.T) {
	toAdd, toRemove := booking.VisitorDelta(visitorRows(100), []uint64{0, 300, 300, 100})

	assert.Equal(t, []uint64{300}, toAdd)
	assert.Empty(t, toRemove)
}

func TestVisitorDelta_AddsPreserveRequestedOrder(t *testing.T) {
	toAdd, _ := booking.VisitorDelta(visitorRows(), []uint64{300, 100, 200})
	assert.Equal(t, []uint64{300, 100, 200}, toAdd)
}

func TestOrderVisitors_FirstPersonLeadsGroup(t *testing.T) {
	rows := booking.OrderVisitors(77, visitorRows(100, 200, 300))

	require.Len(t, rows, 3)
	assert.Equal(t, uint64(100), rows[0].PersonID)
	assert.True(t, rows[0].GroupLeader)
	assert.False(t, rows[1].GroupLeader)
	assert.False(t, rows[2].GroupLeader)
	for _, r := range rows {
		assert.Equal(t, uint64(77), r.OrderID)
	}
}

func TestOrderVisitors_SkipsStatusRow(t *testing.T) {
	// A visit with only its status row yields an empty order visitor list
	rows := booking.OrderVisitors(77, visitorRows())
	assert.Empty(t, rows)
}
