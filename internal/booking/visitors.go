package booking

import "github.com/vsip/visit-sync/internal/model"

// VisitorDelta computes the add/remove sets needed to reconcile a
// visit's visitor list with a requested person-id list.  The person-less
// status-tracking row is ignored on both sides and is never removable
// through reconciliation.  Adds preserve the requested order; removes
// carry the visitor row ids so the caller can delete them directly.
func VisitorDelta(current []model.VisitVisitor, requested []uint64) (toAdd []uint64, toRemove []uint64) {
	present := make(map[uint64]bool, len(current))
	for _, v := range current {
		if v.PersonID != nil {
			present[*v.PersonID] = true
		}
	}
	wanted := make(map[uint64]bool, len(requested))
	for _, pid := range requested {
		if pid == 0 || wanted[pid] {
			continue
		}
		wanted[pid] = true
		if !present[pid] {
			toAdd = append(toAdd, pid)
		}
	}
	for _, v := range current {
		if v.PersonID != nil && !wanted[*v.PersonID] {
			toRemove = append(toRemove, v.ID)
		}
	}
	return toAdd, toRemove
}

// OrderVisitors rebuilds a visit order's visitor list from the visit's
// person-visitors in list order.  The first entry becomes the group
// leader.  This is a full replacement, not a diff: the caller clears
// the existing list and inserts the returned rows.
func OrderVisitors(orderID uint64, visitors []model.VisitVisitor) []model.VisitOrderVisitor {
	out := make([]model.VisitOrderVisitor, 0, len(visitors))
	for _, v := range visitors {
		if v.PersonID == nil {
			continue
		}
		out = append(out, model.VisitOrderVisitor{
			OrderID:     orderID,
			PersonID:    *v.PersonID,
			GroupLeader: len(out) == 0,
		})
	}
	return out
}
