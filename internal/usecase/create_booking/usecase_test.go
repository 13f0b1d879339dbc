package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/config"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/metrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

var paris = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		panic(err)
	}
	return loc
}()

type fakeRepo struct {
	stored    []*domain.Booking
	createErr error
	inTx      []bool
}

func (r *fakeRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.inTx = append(r.inTx, ctx.Value(txMarker{}) != nil)
	if r.createErr != nil {
		return nil, r.createErr
	}
	b.ID = int64(len(r.stored) + 1)
	r.stored = append(r.stored, b)
	return b, nil
}

func (r *fakeRepo) GetByPeriod(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.inTx = append(r.inTx, ctx.Value(txMarker{}) != nil)
	var result []*domain.Booking
	for _, b := range r.stored {
		if !b.BookingDate.Before(filter.StartDate) && !b.BookingDate.After(filter.EndDate) {
			result = append(result, b)
		}
	}
	return result, nil
}

type txMarker struct{}

type fakeTxManager struct {
	calls     int
	commitErr error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		return err
	}
	return m.commitErr
}

type fakeSettings struct {
	settings domain.GatewaySettings
	err      error
}

func (s *fakeSettings) Get(_ context.Context) (*domain.GatewaySettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	settings := s.settings
	return &settings, nil
}

type fakeMetrics struct{ outcomes []string }

func (m *fakeMetrics) ObserveBooking(outcome string) { m.outcomes = append(m.outcomes, outcome) }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	repo     *fakeRepo
	tx       *fakeTxManager
	settings *fakeSettings
	metrics  *fakeMetrics
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo: &fakeRepo{},
		tx:   &fakeTxManager{},
		settings: &fakeSettings{settings: domain.GatewaySettings{
			BookingSettings:  domain.BookingSettings{Enabled: true, DurationMinutes: 30, MaxAdvanceDays: 30},
			MinNoticeMinutes: 60,
		}},
		metrics: &fakeMetrics{},
	}
	f.uc = NewUseCase(f.repo, f.settings, config.Default().Schedule, f.tx, f.metrics, paris, "https://meet.jit.si/", nopLogger{}).
		WithTimeProvider(fixedClock{now: time.Date(2025, 3, 10, 10, 0, 0, 0, paris)})
	f.uc.newMeetingToken = func() string { return "room-42" }
	return f
}

func validRequest() *Request {
	return &Request{
		Details: domain.ContactDetails{
			FirstName: "  marie ",
			LastName:  "curie",
			Email:     "Marie@Example.com",
			Phone:     "+33 6 12 34 56 78",
		},
		Date: types.NewCalendarDate(2025, 3, 11),
		Time: types.TimeOfDay{Hour: 9, Minute: 30},
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, "https://meet.jit.si/room-42", b.MeetingLink)
	assert.Equal(t, 30, b.DurationMinutes)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, "Marie", b.FirstName)
	assert.Equal(t, "CURIE", b.LastName)
	assert.Equal(t, "marie@example.com", b.Email)
	assert.Nil(t, b.Company)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []bool{true, true}, f.repo.inTx, "чтение и вставка внутри транзакции")
	assert.Equal(t, []string{metrics.OutcomeCreated}, f.metrics.outcomes)
}

func TestUseCase_Execute_Company(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Details.Company = " Radium  SARL "

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Booking.Company)
	assert.Equal(t, "Radium SARL", *resp.Booking.Company)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"без телефона", func(r *Request) { r.Details.Phone = "" }},
		{"некорректный email", func(r *Request) { r.Details.Email = "nope" }},
		{"без даты", func(r *Request) { r.Date = types.CalendarDate{} }},
		{"некорректное время", func(r *Request) { r.Time = types.TimeOfDay{Hour: 25} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.tx.calls)
			assert.Equal(t, []string{metrics.OutcomeRejected}, f.metrics.outcomes)
		})
	}
}

func TestUseCase_Execute_ContactErrorIsExposed(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Details.Phone = ""

	_, err := f.uc.Execute(context.Background(), req)

	var contactErr *domain.ContactError
	require.ErrorAs(t, err, &contactErr)
	assert.Equal(t, []string{"Téléphone : champ obligatoire"}, contactErr.Messages)
}

func TestUseCase_Execute_SlotRules(t *testing.T) {
	tests := []struct {
		name     string
		date     types.CalendarDate
		time     types.TimeOfDay
		expected error
	}{
		{"вне расписания", types.NewCalendarDate(2025, 3, 11), types.TimeOfDay{Hour: 12, Minute: 30}, ErrInvalidTimeSlot},
		{"в прошлом", types.NewCalendarDate(2025, 3, 7), types.TimeOfDay{Hour: 9}, ErrInvalidDate},
		{"за горизонтом", types.NewCalendarDate(2025, 4, 14), types.TimeOfDay{Hour: 9}, ErrInvalidDate},
		{"слишком поздно", types.NewCalendarDate(2025, 3, 10), types.TimeOfDay{Hour: 10, Minute: 30}, ErrTooLateToBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			req.Date, req.Time = tt.date, tt.time

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, f.repo.stored)
			assert.Equal(t, []string{metrics.OutcomeRejected}, f.metrics.outcomes)
		})
	}
}

func TestUseCase_Execute_Disabled(t *testing.T) {
	f := newFixture()
	f.settings.settings.Enabled = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingDisabled)
}

func TestUseCase_Execute_DoubleBooking(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, f.repo.stored, 1)
	assert.Equal(t, []string{metrics.OutcomeCreated, metrics.OutcomeSlotTaken}, f.metrics.outcomes)
}

func TestUseCase_Execute_ConcurrentWriterWins(t *testing.T) {
	t.Run("уникальный индекс", func(t *testing.T) {
		f := newFixture()
		f.repo.createErr = bookingRepo.ErrSlotTaken

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("конфликт сериализации при фиксации", func(t *testing.T) {
		f := newFixture()
		f.tx.commitErr = fmt.Errorf("%w: commit: could not serialize access", txmanager.ErrSerialization)

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})
}

func TestUseCase_Execute_InternalErrors(t *testing.T) {
	t.Run("настройки", func(t *testing.T) {
		f := newFixture()
		f.settings.err = errors.New("db down")

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, []string{metrics.OutcomeFailed}, f.metrics.outcomes)
	})

	t.Run("вставка", func(t *testing.T) {
		f := newFixture()
		f.repo.createErr = errors.New("connection reset")

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, []string{metrics.OutcomeFailed}, f.metrics.outcomes)
	})
}
