package booking

import (
	"time"

	"github.com/vsip/visit-sync/internal/model"
)

// orderValidityDays is how long a visit order stays usable after issue.
const orderValidityDays = 28

// Allocation describes the ledger effect of issuing or reversing one
// visit order: which order type is involved, the adjustment reason, the
// signed deltas and the previous-value snapshot of the affected counter.
type Allocation struct {
	OrderType   string
	ReasonCode  string
	VODelta     int32
	PVODelta    int32
	PreviousVO  *int32
	PreviousPVO *int32
}

// DecideAllocation applies the consumption policy to a balance snapshot.
// A nil balance (booking has no balance row) allocates nothing and the
// visit proceeds without an order.  A positive privileged counter is
// consumed first; otherwise a standard order is consumed without
// checking that the standard counter is positive — negative balances
// are a reconciliation concern for the downstream folding process.
func DecideAllocation(bal *model.VisitBalance) *Allocation {
	if bal == nil {
		return nil
	}
	if bal.RemainingPVO > 0 {
		prev := bal.RemainingPVO
		return &Allocation{
			OrderType:   model.OrderTypePrivileged,
			ReasonCode:  model.ReasonPVOIssue,
			PVODelta:    -1,
			PreviousPVO: &prev,
		}
	}
	prev := bal.RemainingVO
	return &Allocation{
		OrderType:  model.OrderTypeStandard,
		ReasonCode: model.ReasonVOIssue,
		VODelta:    -1,
		PreviousVO: &prev,
	}
}

// ReverseAllocation builds the compensating ledger effect for a
// cancelled order.  The +1 delta lands on the counter matching the
// order's type and the previous-value snapshot is carried over from the
// issue adjustment rather than re-read from the live balance.
func ReverseAllocation(orderType string, issue *model.BalanceAdjustment) Allocation {
	if orderType == model.OrderTypePrivileged {
		rev := Allocation{
			OrderType:  model.OrderTypePrivileged,
			ReasonCode: model.ReasonPVOCancel,
			PVODelta:   1,
		}
		if issue != nil {
			rev.PreviousPVO = issue.PreviousPVO
		}
		return rev
	}
	rev := Allocation{
		OrderType:  model.OrderTypeStandard,
		ReasonCode: model.ReasonVOCancel,
		VODelta:    1,
	}
	if issue != nil {
		rev.PreviousVO = issue.PreviousVO
	}
	return rev
}

// OrderExpiry returns the expiry date for an order issued on the given
// date.
func OrderExpiry(issueDate time.Time) time.Time {
	return issueDate.AddDate(0, 0, orderValidityDays)
}
