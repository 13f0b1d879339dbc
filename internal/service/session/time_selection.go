package session

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/usecase/partition_slots"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// SelectTime выбирает слот, доступный в последней загрузке слотов этой даты
func (s *Session) SelectTime(t types.TimeOfDay) error {
	s.mu.Lock()
	st, ok := s.state.(TimeSelection)
	if !ok {
		stage := s.state.Stage()
		s.mu.Unlock()
		return fmt.Errorf("%w: select time in %s", ErrInvalidTransition, stage)
	}
	if st.Load != LoadReady {
		s.mu.Unlock()
		return fmt.Errorf("%w: slots for %s are not loaded", ErrInvalidTransition, st.Date)
	}

	slot, found := st.Slots.Find(t)
	if !found || !slot.Available {
		s.mu.Unlock()
		return fmt.Errorf("%w: slot %s %s is not available", ErrInvalidTransition, st.Date, t)
	}

	s.logger.Info("Session: time %s %s selected", st.Date, t)
	s.cancelPendingLocked()
	s.setStateLocked(ContactForm{
		Settings: s.settings,
		Date:     st.Date,
		Time:     t,
		Details:  s.draft,
	})
	s.mu.Unlock()
	s.notify()
	return nil
}

// ChangeTime возвращает к выбору времени и перезагружает слоты.
// Введенные контактные данные сохраняются для повторного заполнения формы.
func (s *Session) ChangeTime(ctx context.Context) error {
	s.mu.Lock()
	st, ok := s.state.(ContactForm)
	if !ok {
		stage := s.state.Stage()
		s.mu.Unlock()
		return fmt.Errorf("%w: change time in %s", ErrInvalidTransition, stage)
	}
	if st.Submitting {
		s.mu.Unlock()
		return fmt.Errorf("%w: submission in progress", ErrInvalidTransition)
	}

	s.draft = st.Details
	return s.loadSlotsLocked(ctx, st.Date)
}

// loadSlotsLocked переводит сессию в TimeSelection с ожиданием слотов и загружает их.
// Вызывается с захваченным s.mu, освобождает его.
func (s *Session) loadSlotsLocked(ctx context.Context, date types.CalendarDate) error {
	fetchCtx, t := s.beginLocked(ctx, StageTimeSelection, date.String())
	s.setStateLocked(TimeSelection{
		Settings: s.settings,
		Date:     date,
		Load:     LoadPending,
	})
	s.mu.Unlock()
	s.notify()

	slots, err := s.gateway.GetDaySlots(fetchCtx, date)

	s.mu.Lock()
	if !s.finishLocked(t) {
		s.mu.Unlock()
		return ErrStale
	}
	cur, ok := s.state.(TimeSelection)
	if !ok {
		s.mu.Unlock()
		return ErrStale
	}

	if err != nil {
		s.logger.Warn("Session: failed to load slots for %s: %v", date, err)
		cur.Load = LoadFailed
		cur.Err = err
		s.setStateLocked(cur)
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("%w: slots %s: %v", ErrLoadFailed, date, err)
	}

	cur.Slots = partition_slots.Partition(slots)
	cur.Load = LoadReady
	s.setStateLocked(cur)
	s.mu.Unlock()
	s.notify()
	return nil
}
