package session

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/usecase/build_calendar"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// ShowMonth переключает сетку на месяц. Месяц вне диапазона навигации игнорируется (false, nil).
func (s *Session) ShowMonth(ctx context.Context, month types.YearMonth) (bool, error) {
	return s.showMonth(ctx, func(types.YearMonth) types.YearMonth { return month })
}

// NextMonth переходит к следующему месяцу, если он в пределах горизонта
func (s *Session) NextMonth(ctx context.Context) (bool, error) {
	return s.showMonth(ctx, types.YearMonth.Next)
}

// PrevMonth переходит к предыдущему месяцу, но не раньше текущего
func (s *Session) PrevMonth(ctx context.Context) (bool, error) {
	return s.showMonth(ctx, types.YearMonth.Prev)
}

func (s *Session) showMonth(ctx context.Context, target func(current types.YearMonth) types.YearMonth) (bool, error) {
	s.mu.Lock()
	st, ok := s.state.(DateSelection)
	if !ok {
		stage := s.state.Stage()
		s.mu.Unlock()
		return false, fmt.Errorf("%w: month navigation in %s", ErrInvalidTransition, stage)
	}

	month := target(st.Month)
	bounds := build_calendar.Bounds(s.horizonLocked())
	if !bounds.Contains(month) {
		s.mu.Unlock()
		return false, nil
	}

	st.Month = month
	return true, s.loadMonthLocked(ctx, st)
}

// SelectDate выбирает доступный день загруженной сетки и загружает его слоты.
// Выбранное ранее время сбрасывается.
func (s *Session) SelectDate(ctx context.Context, date types.CalendarDate) error {
	s.mu.Lock()
	st, ok := s.state.(DateSelection)
	if !ok {
		stage := s.state.Stage()
		s.mu.Unlock()
		return fmt.Errorf("%w: select date in %s", ErrInvalidTransition, stage)
	}
	if st.Load != LoadReady {
		s.mu.Unlock()
		return fmt.Errorf("%w: month %s is not loaded", ErrInvalidTransition, st.Month)
	}

	day, found := st.Grid.Day(date)
	if !found || !day.Available || !s.horizonLocked().Contains(date) {
		s.mu.Unlock()
		return fmt.Errorf("%w: date %s is not available", ErrInvalidTransition, date)
	}

	s.logger.Info("Session: date %s selected", date)
	return s.loadSlotsLocked(ctx, date)
}

// ChangeDate возвращает к выбору даты. Прежняя дата остается только подсветкой.
func (s *Session) ChangeDate(ctx context.Context) error {
	s.mu.Lock()
	st, ok := s.state.(TimeSelection)
	if !ok {
		stage := s.state.Stage()
		s.mu.Unlock()
		return fmt.Errorf("%w: change date in %s", ErrInvalidTransition, stage)
	}

	previous := st.Date
	bounds := build_calendar.Bounds(s.horizonLocked())
	return s.loadMonthLocked(ctx, DateSelection{
		Month:    bounds.Clamp(previous.YearMonth()),
		Previous: &previous,
	})
}

// loadMonthLocked переводит сессию в DateSelection с ожиданием данных месяца и загружает их.
// Вызывается с захваченным s.mu, освобождает его.
func (s *Session) loadMonthLocked(ctx context.Context, next DateSelection) error {
	horizon := s.horizonLocked()
	month := next.Month

	next.Settings = s.settings
	next.Today = horizon.Today
	next.Bounds = build_calendar.Bounds(horizon)
	next.Grid = build_calendar.Build(month, horizon, nil)
	next.Load = LoadPending
	next.Err = nil

	fetchCtx, t := s.beginLocked(ctx, StageDateSelection, month.String())
	s.setStateLocked(next)
	s.mu.Unlock()
	s.notify()

	availability, err := s.gateway.GetMonthAvailability(fetchCtx, month)

	s.mu.Lock()
	if !s.finishLocked(t) {
		s.mu.Unlock()
		return ErrStale
	}
	cur, ok := s.state.(DateSelection)
	if !ok {
		s.mu.Unlock()
		return ErrStale
	}

	if err != nil {
		s.logger.Warn("Session: failed to load month %s: %v", month, err)
		cur.Load = LoadFailed
		cur.Err = err
		s.setStateLocked(cur)
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("%w: month %s: %v", ErrLoadFailed, month, err)
	}

	cur.Grid = build_calendar.Build(month, s.horizonLocked(), availability)
	cur.Load = LoadReady
	s.setStateLocked(cur)
	s.mu.Unlock()
	s.notify()
	return nil
}
