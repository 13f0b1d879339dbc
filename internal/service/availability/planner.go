package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/config"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Planner считает слоты для зафиксированных настроек и момента времени
type Planner struct {
	settings domain.GatewaySettings
	schedule Schedule
	now      time.Time
	loc      *time.Location
}

// NewPlanner создает планировщик. now переводится в часовой пояс приема.
func NewPlanner(settings domain.GatewaySettings, schedule Schedule, now time.Time, loc *time.Location) *Planner {
	return &Planner{
		settings: settings,
		schedule: schedule,
		now:      now.In(loc),
		loc:      loc,
	}
}

// Today текущая дата в часовом поясе приема
func (p *Planner) Today() types.CalendarDate {
	return types.DateOf(p.now)
}

// Horizon окно бронирования начиная с сегодняшнего дня
func (p *Planner) Horizon() domain.Horizon {
	return p.settings.Horizon(p.Today())
}

// DaySlots возвращает все слоты расписания на дату в порядке времени.
// Слоты, занятые или нарушающие минимальное уведомление, помечаются недоступными.
// Для выключенного бронирования и дат вне горизонта список пуст.
func (p *Planner) DaySlots(date types.CalendarDate, bookings []*domain.Booking) ([]domain.TimeSlot, error) {
	if !p.settings.Enabled || !p.Horizon().Contains(date) {
		return []domain.TimeSlot{}, nil
	}

	starts, err := p.grid(date)
	if err != nil {
		return nil, err
	}

	cutoff := p.cutoff()
	slots := make([]domain.TimeSlot, 0, len(starts))
	for _, start := range starts {
		available := !start.On(date, p.loc).Before(cutoff) &&
			countOverlappingBookings(start, p.settings.DurationMinutes, bookings) == 0
		slots = append(slots, domain.TimeSlot{Time: start, Available: available})
	}

	return slots, nil
}

// HasAvailable возвращает true, если на дату есть хотя бы один свободный слот
func (p *Planner) HasAvailable(date types.CalendarDate, bookings []*domain.Booking) (bool, error) {
	slots, err := p.DaySlots(date, bookings)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s.Available {
			return true, nil
		}
	}
	return false, nil
}

// Check проверяет, что слот можно забронировать
func (p *Planner) Check(date types.CalendarDate, start types.TimeOfDay, bookings []*domain.Booking) error {
	if !p.settings.Enabled {
		return ErrBookingDisabled
	}
	if !p.Horizon().Contains(date) {
		return fmt.Errorf("%w: %s", ErrDateOutOfRange, date)
	}

	starts, err := p.grid(date)
	if err != nil {
		return err
	}
	if !containsTime(starts, start) {
		return fmt.Errorf("%w: %s %s", ErrSlotNotOffered, date, start)
	}

	if start.On(date, p.loc).Before(p.cutoff()) {
		return fmt.Errorf("%w: %s %s", ErrTooLate, date, start)
	}

	if countOverlappingBookings(start, p.settings.DurationMinutes, bookings) > 0 {
		return fmt.Errorf("%w: %s %s", ErrSlotTaken, date, start)
	}

	return nil
}

// DurationMinutes длительность консультации
func (p *Planner) DurationMinutes() int {
	return p.settings.DurationMinutes
}

func (p *Planner) cutoff() time.Time {
	return p.now.Add(time.Duration(p.settings.MinNoticeMinutes) * time.Minute)
}

func (p *Planner) grid(date types.CalendarDate) ([]types.TimeOfDay, error) {
	intervals, err := p.schedule.ForWeekday(date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("%w: schedule for %s: %v", ErrInternal, date, err)
	}
	return generateTimeSlots(intervals, p.settings.DurationMinutes), nil
}

// generateTimeSlots нарезает интервалы на слоты с шагом slotDuration.
// Слот, который не помещается в интервал целиком, отбрасывается.
func generateTimeSlots(intervals []config.Interval, slotDuration int) []types.TimeOfDay {
	slots := make([]types.TimeOfDay, 0)
	if slotDuration <= 0 {
		return slots
	}

	for _, interval := range intervals {
		for m := interval.Open.Minutes(); m+slotDuration <= interval.Close.Minutes(); m += slotDuration {
			slots = append(slots, types.TimeOfDay{Hour: m / 60, Minute: m % 60})
		}
	}
	return slots
}

// countOverlappingBookings подсчитывает активные бронирования, пересекающиеся со слотом.
// Граничащие интервалы (конец одного ровно в начале другого) не пересекаются.
//
// Примеры:
// - Слот 11:30-12:00, бронирование 11:20-11:40 → пересечение
// - Слот 11:30-12:00, бронирование 11:00-11:30 → нет пересечения
func countOverlappingBookings(slotStart types.TimeOfDay, slotDuration int, bookings []*domain.Booking) int {
	slotFrom := slotStart.Minutes()
	slotTo := slotFrom + slotDuration

	count := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		bookingFrom := booking.StartTime.Minutes()
		bookingTo := bookingFrom + booking.DurationMinutes

		if bookingFrom < slotTo && bookingTo > slotFrom {
			count++
		}
	}
	return count
}

func containsTime(slots []types.TimeOfDay, t types.TimeOfDay) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
