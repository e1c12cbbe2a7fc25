package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsip/visit-sync/internal/booking"
	"github.com/vsip/visit-sync/internal/model"
)

func TestCancelGuard_ScheduledIsCancellable(t *testing.T) {
	assert.NoError(t, booking.CancelGuard(model.StatusScheduled))
}

func TestCancelGuard_AlreadyCancelled(t *testing.T) {
	err := booking.CancelGuard(model.StatusCancelled)

	require.Error(t, err)
	var stateErr *booking.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, model.StatusCancelled, stateErr.Current)
}

func TestCancelGuard_ForeignStatus(t *testing.T) {
	// Statuses written by the legacy system are not cancellable here
	for _, status := range []string{"COMP", "EXP", "HQ", ""} {
		err := booking.CancelGuard(status)
		var stateErr *booking.StateError
		assert.ErrorAs(t, err, &stateErr, "status %q", status)
	}
}
