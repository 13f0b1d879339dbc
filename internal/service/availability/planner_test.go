package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/config"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

var paris = mustLocation("Europe/Paris")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// понедельник 2025-03-10 10:00 по Парижу
var testNow = time.Date(2025, 3, 10, 10, 0, 0, 0, paris)

func testSettings() domain.GatewaySettings {
	return domain.GatewaySettings{
		BookingSettings: domain.BookingSettings{
			Enabled:         true,
			DurationMinutes: 30,
			MaxAdvanceDays:  30,
		},
		MinNoticeMinutes: 60,
	}
}

func newTestPlanner(settings domain.GatewaySettings) *Planner {
	return NewPlanner(settings, config.Default().Schedule, testNow, paris)
}

func tod(s string) types.TimeOfDay {
	t, err := types.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func booking(date types.CalendarDate, start string, duration int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		BookingDate:     date,
		StartTime:       tod(start),
		DurationMinutes: duration,
		Status:          status,
	}
}

func availableTimes(slots []domain.TimeSlot) []string {
	var result []string
	for _, s := range slots {
		if s.Available {
			result = append(result, s.Time.String())
		}
	}
	return result
}

func TestGenerateTimeSlots(t *testing.T) {
	intervals := []config.Interval{
		{Open: tod("09:00"), Close: tod("12:00")},
		{Open: tod("14:00"), Close: tod("15:00")},
	}

	t.Run("шаг 45 минут, последний слот заканчивается ровно в закрытие", func(t *testing.T) {
		slots := generateTimeSlots(intervals[:1], 45)
		require.Len(t, slots, 4)
		assert.Equal(t, "09:00", slots[0].String())
		assert.Equal(t, "11:15", slots[3].String())
	})

	t.Run("несколько интервалов", func(t *testing.T) {
		slots := generateTimeSlots(intervals, 30)
		require.Len(t, slots, 8)
		assert.Equal(t, "11:30", slots[5].String())
		assert.Equal(t, "14:00", slots[6].String())
	})

	t.Run("длительность больше интервала", func(t *testing.T) {
		assert.Empty(t, generateTimeSlots(intervals[1:], 90))
	})

	t.Run("нулевая длительность", func(t *testing.T) {
		assert.Empty(t, generateTimeSlots(intervals, 0))
	})
}

func TestCountOverlappingBookings(t *testing.T) {
	date := types.NewCalendarDate(2025, 3, 11)
	slot := tod("11:30")

	tests := []struct {
		name     string
		booking  *domain.Booking
		expected int
	}{
		{"частичное пересечение", booking(date, "11:20", 20, domain.StatusConfirmed), 1},
		{"граничит слева", booking(date, "11:00", 30, domain.StatusConfirmed), 0},
		{"граничит справа", booking(date, "12:00", 30, domain.StatusConfirmed), 0},
		{"охватывает слот", booking(date, "11:00", 90, domain.StatusConfirmed), 1},
		{"отмененное не учитывается", booking(date, "11:30", 30, domain.StatusCancelled), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, countOverlappingBookings(slot, 30, []*domain.Booking{tt.booking}))
		})
	}
}

func TestPlanner_DaySlots(t *testing.T) {
	t.Run("будний день без бронирований", func(t *testing.T) {
		slots, err := newTestPlanner(testSettings()).DaySlots(types.NewCalendarDate(2025, 3, 11), nil)
		require.NoError(t, err)
		require.Len(t, slots, 14)
		assert.Equal(t, "09:00", slots[0].Time.String())
		assert.Equal(t, "17:30", slots[13].Time.String())
		assert.Len(t, availableTimes(slots), 14)
	})

	t.Run("сегодня: минимальное уведомление", func(t *testing.T) {
		slots, err := newTestPlanner(testSettings()).DaySlots(types.NewCalendarDate(2025, 3, 10), nil)
		require.NoError(t, err)
		require.Len(t, slots, 14)

		available := availableTimes(slots)
		require.NotEmpty(t, available)
		assert.Equal(t, "11:00", available[0])
		assert.False(t, slots[3].Available, "10:30 ближе часа к текущему моменту")
	})

	t.Run("занятые слоты", func(t *testing.T) {
		date := types.NewCalendarDate(2025, 3, 11)
		bookings := []*domain.Booking{
			booking(date, "14:15", 30, domain.StatusConfirmed),
			booking(date, "09:00", 30, domain.StatusCancelled),
		}

		slots, err := newTestPlanner(testSettings()).DaySlots(date, bookings)
		require.NoError(t, err)

		byTime := make(map[string]bool)
		for _, s := range slots {
			byTime[s.Time.String()] = s.Available
		}
		assert.True(t, byTime["09:00"])
		assert.False(t, byTime["14:00"])
		assert.False(t, byTime["14:30"])
		assert.True(t, byTime["15:00"])
	})

	t.Run("выходной", func(t *testing.T) {
		slots, err := newTestPlanner(testSettings()).DaySlots(types.NewCalendarDate(2025, 3, 15), nil)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("горизонт", func(t *testing.T) {
		planner := newTestPlanner(testSettings())

		last, err := planner.DaySlots(types.NewCalendarDate(2025, 4, 9), nil)
		require.NoError(t, err)
		assert.NotEmpty(t, last)

		beyond, err := planner.DaySlots(types.NewCalendarDate(2025, 4, 10), nil)
		require.NoError(t, err)
		assert.Empty(t, beyond)

		past, err := planner.DaySlots(types.NewCalendarDate(2025, 3, 7), nil)
		require.NoError(t, err)
		assert.Empty(t, past)
	})

	t.Run("бронирование выключено", func(t *testing.T) {
		settings := testSettings()
		settings.Enabled = false

		slots, err := newTestPlanner(settings).DaySlots(types.NewCalendarDate(2025, 3, 11), nil)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestPlanner_Check(t *testing.T) {
	tuesday := types.NewCalendarDate(2025, 3, 11)
	today := types.NewCalendarDate(2025, 3, 10)

	disabled := testSettings()
	disabled.Enabled = false

	tests := []struct {
		name     string
		settings domain.GatewaySettings
		date     types.CalendarDate
		time     string
		bookings []*domain.Booking
		expected error
	}{
		{"свободный слот", testSettings(), tuesday, "09:30", nil, nil},
		{"выключено", disabled, tuesday, "09:30", nil, ErrBookingDisabled},
		{"в прошлом", testSettings(), types.NewCalendarDate(2025, 3, 7), "09:30", nil, ErrDateOutOfRange},
		{"за горизонтом", testSettings(), types.NewCalendarDate(2025, 4, 10), "09:30", nil, ErrDateOutOfRange},
		{"не по сетке", testSettings(), tuesday, "09:15", nil, ErrSlotNotOffered},
		{"обеденный перерыв", testSettings(), tuesday, "12:00", nil, ErrSlotNotOffered},
		{"выходной", testSettings(), types.NewCalendarDate(2025, 3, 16), "10:00", nil, ErrSlotNotOffered},
		{"слишком поздно", testSettings(), today, "10:30", nil, ErrTooLate},
		{"ровно на границе уведомления", testSettings(), today, "11:00", nil, nil},
		{
			"занят", testSettings(), tuesday, "10:00",
			[]*domain.Booking{booking(tuesday, "10:00", 30, domain.StatusConfirmed)},
			ErrSlotTaken,
		},
		{
			"отмененное не мешает", testSettings(), tuesday, "10:00",
			[]*domain.Booking{booking(tuesday, "10:00", 30, domain.StatusCancelled)},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestPlanner(tt.settings).Check(tt.date, tod(tt.time), tt.bookings)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestPlanner_NowInScheduleZone(t *testing.T) {
	// 23:30 UTC 10 марта - это уже 11 марта в Париже
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	planner := NewPlanner(testSettings(), config.Default().Schedule, now, paris)

	assert.Equal(t, types.NewCalendarDate(2025, 3, 11), planner.Today())
}
