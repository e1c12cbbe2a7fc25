package booking

import (
	"fmt"

	"github.com/vsip/visit-sync/internal/model"
)

// StateError reports a visit state that is incompatible with the
// attempted transition.  Handlers translate it into an HTTP 409.
type StateError struct {
	Current string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("visit cannot be cancelled in status %q", e.Current)
}

// CancelGuard enforces the only transition this service performs:
// SCH -> CANC, exactly once.  Cancelling an already-cancelled visit, or
// a visit left in any other status by the legacy system, is a conflict.
func CancelGuard(status string) error {
	if status == model.StatusScheduled {
		return nil
	}
	return &StateError{Current: status}
}
