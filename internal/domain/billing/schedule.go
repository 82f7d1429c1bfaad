package billing

import (
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
)

// Schedule counts service days for one facility in one month
type Schedule struct {
	// ScheduledDays are calendar days matching the days-of-week set, ignoring pauses
	ScheduledDays int `json:"scheduled_days"`
	ActiveDays    int `json:"active_days"`
}

// CalculateSchedule walks the calendar days of the month. Scheduled days inside
// the pause window are not active. A non-billable status has no active days but
// still reports its scheduled days.
func CalculateSchedule(state *EffectiveState, month types.BillingMonth) Schedule {
	var s Schedule
	first := month.FirstDay()
	for day := 1; day <= month.DaysInMonth(); day++ {
		date := first.AddDate(0, 0, day-1)
		if !state.DaysOfWeek.Contains(date.Weekday()) {
			continue
		}
		s.ScheduledDays++
		if !state.PauseWindow.Contains(day) {
			s.ActiveDays++
		}
	}

	if !state.Status.IsBillable() {
		s.ActiveDays = 0
	}
	return s
}
