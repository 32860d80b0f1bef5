package revenue

import (
	"testing"
	"time"
)

func TestPeriodStart(t *testing.T) {
	// Wednesday
	ts := time.Date(2025, 9, 17, 15, 30, 0, 0, time.UTC)

	if got := PeriodStart(ts, CycleDaily); !got.Equal(time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("daily: %v", got)
	}
	if got := PeriodStart(ts, CycleWeekly); !got.Equal(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("weekly should truncate to Monday: %v", got)
	}
	if got := PeriodStart(ts, CycleMonthly); !got.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("monthly: %v", got)
	}

	// Sunday belongs to the week starting the previous Monday
	sun := time.Date(2025, 9, 21, 1, 0, 0, 0, time.UTC)
	if got := PeriodStart(sun, CycleWeekly); !got.Equal(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("weekly sunday: %v", got)
	}
}

func TestDueCutoffRespectsDelay(t *testing.T) {
	// monthly cycle, 7 day delay
	early := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	if got := DueCutoff(early, CycleMonthly, 7); !got.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("before delay elapses the cutoff should be the previous period: %v", got)
	}
	late := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	if got := DueCutoff(late, CycleMonthly, 7); !got.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("after delay elapses the cutoff is the current period start: %v", got)
	}
}

func TestDueCutoffZeroDelay(t *testing.T) {
	ts := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)
	if got := DueCutoff(ts, CycleDaily, 0); !got.Equal(time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("daily zero delay: %v", got)
	}
}
