package domain

import "github.com/m04kA/SMC-ConsultationService/pkg/types"

// CalendarDay represents one day of a month with its availability
type CalendarDay struct {
	Date      types.CalendarDate
	Available bool
}

// TimeSlot represents a bookable start time within a single day.
// Only meaningful together with the date it was fetched for.
type TimeSlot struct {
	Time      types.TimeOfDay
	Available bool
}

// IsMorning returns true if the slot starts before noon
func (s TimeSlot) IsMorning() bool {
	return s.Time.Hour < NoonHour
}
