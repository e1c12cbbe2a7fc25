// Package booking holds the decision logic of the visit core: weekday and
// room derivation for slot provisioning, the visit-order allocation and
// reversal policy, visitor set reconciliation and the visit state guards.
// Everything here is pure; persistence lives in the repository layer.
package booking

import (
	"fmt"
	"time"
)

// weekdayCodes is the fixed mapping from Go weekdays to the legacy
// weekday codes the scheduling hierarchy is keyed on.
var weekdayCodes = map[time.Weekday]string{
	time.Monday:    "MON",
	time.Tuesday:   "TUE",
	time.Wednesday: "WED",
	time.Thursday:  "THU",
	time.Friday:    "FRI",
	time.Saturday:  "SAT",
	time.Sunday:    "SUN",
}

// WeekdayCode returns the legacy weekday code for the day of week of t.
// The mapping is total over real weekdays; the error path exists only to
// guard against an incomplete mapping.
func WeekdayCode(t time.Time) (string, error) {
	code, ok := weekdayCodes[t.Weekday()]
	if !ok {
		return "", fmt.Errorf("no weekday code mapped for %s", t.Weekday())
	}
	return code, nil
}
