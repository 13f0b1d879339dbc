package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Service сервис расчета доступности по расписанию и бронированиям
type Service struct {
	bookings     BookingRepository
	settings     SettingsProvider
	schedule     Schedule
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	bookings BookingRepository,
	settings SettingsProvider,
	schedule Schedule,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookings:     bookings,
		settings:     settings,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Planner возвращает планировщик для текущих настроек и текущего момента
func (s *Service) Planner(ctx context.Context) (*Planner, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: get settings: %v", ErrInternal, err)
	}
	return NewPlanner(*settings, s.schedule, s.timeProvider.Now(), s.loc), nil
}

// DaySlots возвращает слоты дня с флагами доступности
func (s *Service) DaySlots(ctx context.Context, date types.CalendarDate) ([]domain.TimeSlot, error) {
	planner, err := s.Planner(ctx)
	if err != nil {
		s.logger.Error("Availability.DaySlots: %v", err)
		return nil, err
	}

	bookings, err := s.bookings.GetByPeriod(ctx, domain.BookingsFilter{StartDate: date, EndDate: date})
	if err != nil {
		s.logger.Error("Availability.DaySlots: failed to get bookings for %s: %v", date, err)
		return nil, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}

	slots, err := planner.DaySlots(date, bookings)
	if err != nil {
		s.logger.Error("Availability.DaySlots: %v", err)
		return nil, err
	}
	return slots, nil
}

// MonthAvailability возвращает флаг доступности для каждого дня месяца по порядку
func (s *Service) MonthAvailability(ctx context.Context, month types.YearMonth) ([]domain.CalendarDay, error) {
	planner, err := s.Planner(ctx)
	if err != nil {
		s.logger.Error("Availability.MonthAvailability: %v", err)
		return nil, err
	}

	first, last := month.FirstDay(), month.LastDay()
	bookings, err := s.bookings.GetByPeriod(ctx, domain.BookingsFilter{StartDate: first, EndDate: last})
	if err != nil {
		s.logger.Error("Availability.MonthAvailability: failed to get bookings for %s: %v", month, err)
		return nil, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}

	byDate := make(map[types.CalendarDate][]*domain.Booking)
	for _, b := range bookings {
		byDate[b.BookingDate] = append(byDate[b.BookingDate], b)
	}

	days := make([]domain.CalendarDay, 0, month.DaysIn())
	for d := first; !d.After(last); d = d.AddDays(1) {
		available, err := planner.HasAvailable(d, byDate[d])
		if err != nil {
			s.logger.Error("Availability.MonthAvailability: %v", err)
			return nil, err
		}
		days = append(days, domain.CalendarDay{Date: d, Available: available})
	}

	return days, nil
}
