package economy

import "time"

// MonthsActive returns the whole calendar-month difference between now and
// the plan start. Year-month arithmetic, not day-granular: Jan 20 → Mar 5
// counts as 2, Jan 1 → Feb 15 counts as 1. A nil start (no active plan)
// returns 0, as does a start in the future.
func MonthsActive(start *time.Time, now time.Time) int {
	if start == nil {
		return 0
	}
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}
