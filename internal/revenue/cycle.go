package revenue

import "time"

type PayoutCycle string

const (
	CycleDaily   PayoutCycle = "daily"
	CycleWeekly  PayoutCycle = "weekly"
	CycleMonthly PayoutCycle = "monthly"
)

// PeriodStart truncates t to the start of its payout period. Weeks start on
// Monday. Unknown cycles fall back to monthly.
func PeriodStart(t time.Time, cycle PayoutCycle) time.Time {
	y, m, d := t.Date()
	switch cycle {
	case CycleDaily:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	case CycleWeekly:
		day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	}
}

// PrevPeriodStart returns the start of the period before the one containing t.
func PrevPeriodStart(t time.Time, cycle PayoutCycle) time.Time {
	start := PeriodStart(t, cycle)
	switch cycle {
	case CycleDaily:
		return start.AddDate(0, 0, -1)
	case CycleWeekly:
		return start.AddDate(0, 0, -7)
	default:
		return start.AddDate(0, -1, 0)
	}
}

// DueCutoff computes the settlement cutoff for asOf: entries calculated
// before the cutoff are due for payout. Entries of a closed period become
// due only once payoutDelayDays of the following period have passed, so a
// payout run early in a period reaches back one period further.
func DueCutoff(asOf time.Time, cycle PayoutCycle, payoutDelayDays int) time.Time {
	start := PeriodStart(asOf, cycle)
	if asOf.Before(start.AddDate(0, 0, payoutDelayDays)) {
		return PrevPeriodStart(asOf, cycle)
	}
	return start
}
