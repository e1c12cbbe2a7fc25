package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsip/visit-sync/internal/booking"
	"github.com/vsip/visit-sync/internal/model"
)

func balance(vo, pvo int32) *model.VisitBalance {
	return &model.VisitBalance{BookingID: 1, RemainingVO: vo, RemainingPVO: pvo}
}

func TestDecideAllocation_NoBalanceRow_NoOrder(t *testing.T) {
	// GIVEN: a booking with no balance row
	// THEN: no order is allocated and the visit proceeds without one
	assert.Nil(t, booking.DecideAllocation(nil))
}

func TestDecideAllocation_PrivilegedPreferred(t *testing.T) {
	// GIVEN: both counters positive
	// THEN: the privileged counter is consumed first
	alloc := booking.DecideAllocation(balance(5, 1))
	require.NotNil(t, alloc)

	assert.Equal(t, model.OrderTypePrivileged, alloc.OrderType)
	assert.Equal(t, model.ReasonPVOIssue, alloc.ReasonCode)
	assert.Equal(t, int32(-1), alloc.PVODelta)
	assert.Equal(t, int32(0), alloc.VODelta)
	require.NotNil(t, alloc.PreviousPVO)
	assert.Equal(t, int32(1), *alloc.PreviousPVO)
	assert.Nil(t, alloc.PreviousVO)
}

func TestDecideAllocation_StandardWhenNoPrivileged(t *testing.T) {
	alloc := booking.DecideAllocation(balance(3, 0))
	require.NotNil(t, alloc)

	assert.Equal(t, model.OrderTypeStandard, alloc.OrderType)
	assert.Equal(t, model.ReasonVOIssue, alloc.ReasonCode)
	assert.Equal(t, int32(-1), alloc.VODelta)
	assert.Equal(t, int32(0), alloc.PVODelta)
	require.NotNil(t, alloc.PreviousVO)
	assert.Equal(t, int32(3), *alloc.PreviousVO)
}

func TestDecideAllocation_StandardConsumedEvenWhenExhausted(t *testing.T) {
	// GIVEN: both counters at or below zero
	// THEN: a standard order is still issued; the counter goes negative
	// and is left for the downstream reconciliation to fold
	alloc := booking.DecideAllocation(balance(0, 0))
	require.NotNil(t, alloc)
	assert.Equal(t, model.OrderTypeStandard, alloc.OrderType)
	require.NotNil(t, alloc.PreviousVO)
	assert.Equal(t, int32(0), *alloc.PreviousVO)

	alloc = booking.DecideAllocation(balance(-2, -1))
	require.NotNil(t, alloc)
	assert.Equal(t, model.OrderTypeStandard, alloc.OrderType)
	assert.Equal(t, int32(-1), alloc.VODelta)
	require.NotNil(t, alloc.PreviousVO)
	assert.Equal(t, int32(-2), *alloc.PreviousVO)
}

func TestReverseAllocation_CarriesIssueSnapshot(t *testing.T) {
	// GIVEN: a standard order whose issue adjustment recorded previous_vo=4
	prev := int32(4)
	issue := &model.BalanceAdjustment{
		ReasonCode: model.ReasonVOIssue,
		VODelta:    -1,
		PreviousVO: &prev,
	}

	rev := booking.ReverseAllocation(model.OrderTypeStandard, issue)

	assert.Equal(t, model.ReasonVOCancel, rev.ReasonCode)
	assert.Equal(t, int32(1), rev.VODelta)
	assert.Equal(t, int32(0), rev.PVODelta)
	// The previous value comes from the issue adjustment, not the live
	// balance at cancellation time.
	require.NotNil(t, rev.PreviousVO)
	assert.Equal(t, int32(4), *rev.PreviousVO)
}

func TestReverseAllocation_Privileged(t *testing.T) {
	prev := int32(2)
	issue := &model.BalanceAdjustment{
		ReasonCode:  model.ReasonPVOIssue,
		PVODelta:    -1,
		PreviousPVO: &prev,
	}

	rev := booking.ReverseAllocation(model.OrderTypePrivileged, issue)

	assert.Equal(t, model.ReasonPVOCancel, rev.ReasonCode)
	assert.Equal(t, int32(1), rev.PVODelta)
	assert.Equal(t, int32(0), rev.VODelta)
	require.NotNil(t, rev.PreviousPVO)
	assert.Equal(t, int32(2), *rev.PreviousPVO)
}

func TestReverseAllocation_MissingIssueAdjustment(t *testing.T) {
	// Issue adjustment rows can be absent for orders created before the
	// ledger linked them. The reversal still applies, without a snapshot.
	rev := booking.ReverseAllocation(model.OrderTypeStandard, nil)

	assert.Equal(t, model.ReasonVOCancel, rev.ReasonCode)
	assert.Equal(t, int32(1), rev.VODelta)
	assert.Nil(t, rev.PreviousVO)
}

func TestOrderExpiry_TwentyEightDays(t *testing.T) {
	issued := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC), booking.OrderExpiry(issued))
}
