package session

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/usecase/submit_booking"
)

// SaveDraft сохраняет введенные данные без отправки
func (s *Session) SaveDraft(details domain.ContactDetails) error {
	s.mu.Lock()
	st, ok := s.state.(ContactForm)
	if !ok || st.Submitting {
		stage := s.state.Stage()
		s.mu.Unlock()
		return fmt.Errorf("%w: save draft in %s", ErrInvalidTransition, stage)
	}

	st.Details = details
	s.draft = details
	s.setStateLocked(st)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Submit отправляет бронирование выбранного слота. Повторная отправка во время текущей запрещена.
// При ошибке данные формы сохраняются, а сообщение прикрепляется к ContactForm.
func (s *Session) Submit(ctx context.Context, details domain.ContactDetails) error {
	s.mu.Lock()
	st, ok := s.state.(ContactForm)
	if !ok {
		stage := s.state.Stage()
		s.mu.Unlock()
		return fmt.Errorf("%w: submit in %s", ErrInvalidTransition, stage)
	}
	if st.Submitting {
		s.mu.Unlock()
		return fmt.Errorf("%w: submission already in progress", ErrInvalidTransition)
	}

	st.Details = details
	st.Submitting = true
	st.Err = nil
	st.Message = ""
	s.draft = details

	submitCtx, t := s.beginLocked(ctx, StageContactForm, st.Date.String()+" "+st.Time.String())
	s.setStateLocked(st)
	s.mu.Unlock()
	s.notify()

	resp, err := s.submitter.Execute(submitCtx, &submit_booking.Request{
		Date:    st.Date,
		Time:    st.Time,
		Details: details,
	})

	s.mu.Lock()
	if !s.finishLocked(t) {
		s.mu.Unlock()
		return ErrStale
	}
	cur, ok := s.state.(ContactForm)
	if !ok {
		s.mu.Unlock()
		return ErrStale
	}

	if err != nil {
		cur.Submitting = false
		cur.Err = err
		cur.Message = submit_booking.UserMessage(err)
		s.setStateLocked(cur)
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.logger.Info("Session: booking confirmed %s %s", resp.Booking.Date, resp.Booking.Time)
	s.draft = domain.ContactDetails{}
	s.setStateLocked(Confirmed{Booking: resp.Booking, Details: resp.Details})
	s.mu.Unlock()
	s.notify()
	return nil
}
