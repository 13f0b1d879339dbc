package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/gateway"
	"github.com/m04kA/SMC-ConsultationService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// fakeGateway отвечает из заданных данных; запросы с ключом из gates ждут закрытия канала.
// Отмена контекста игнорируется, как у сервера, не знающего об отмене.
type fakeGateway struct {
	mu sync.Mutex

	settings    *domain.BookingSettings
	settingsErr error
	months      map[types.YearMonth]map[types.CalendarDate]bool
	monthErr    error
	slots       map[types.CalendarDate][]domain.TimeSlot
	slotsErr    error
	booking     *domain.ConfirmedBooking
	bookingErr  error

	gates   map[string]chan struct{}
	started chan string
	calls   map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		settings: &domain.BookingSettings{Enabled: true, DurationMinutes: 30, MaxAdvanceDays: 30},
		months:   map[types.YearMonth]map[types.CalendarDate]bool{},
		slots:    map[types.CalendarDate][]domain.TimeSlot{},
		gates:    map[string]chan struct{}{},
		started:  make(chan string, 16),
		calls:    map[string]int{},
	}
}

func (f *fakeGateway) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[key] = ch
	return ch
}

func (f *fakeGateway) enter(key string) {
	f.mu.Lock()
	f.calls[key]++
	ch := f.gates[key]
	delete(f.gates, key)
	f.mu.Unlock()

	if ch != nil {
		f.started <- key
		<-ch
	}
}

func (f *fakeGateway) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeGateway) GetSettings(_ context.Context) (*domain.BookingSettings, error) {
	f.enter("settings")
	return f.settings, f.settingsErr
}

func (f *fakeGateway) GetMonthAvailability(_ context.Context, month types.YearMonth) (map[types.CalendarDate]bool, error) {
	f.enter("month:" + month.String())
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.monthErr != nil {
		return nil, f.monthErr
	}
	return f.months[month], nil
}

func (f *fakeGateway) GetDaySlots(_ context.Context, date types.CalendarDate) ([]domain.TimeSlot, error) {
	f.enter("slots:" + date.String())
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	return f.slots[date], nil
}

func (f *fakeGateway) CreateBooking(_ context.Context, req *gateway.BookingRequest) (*domain.ConfirmedBooking, error) {
	f.enter("booking")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	if f.booking != nil {
		return f.booking, nil
	}
	date, _ := types.ParseDate(req.Date)
	t, _ := types.ParseTimeOfDay(req.Time)
	return &domain.ConfirmedBooking{
		Date:            date,
		Time:            t,
		DurationMinutes: f.settings.DurationMinutes,
		MeetingLink:     "https://meet.example/room-42",
	}, nil
}

var (
	march      = types.YearMonth{Year: 2025, Month: time.March}
	april      = types.YearMonth{Year: 2025, Month: time.April}
	mar10      = types.CalendarDate{Year: 2025, Month: time.March, Day: 10}
	mar11      = types.CalendarDate{Year: 2025, Month: time.March, Day: 11}
	nine       = types.TimeOfDay{Hour: 9}
	nineThirty = types.TimeOfDay{Hour: 9, Minute: 30}
)

func newTestSession(t *testing.T, gw *fakeGateway) *Session {
	t.Helper()
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	clock := fixedClock{now: time.Date(2025, time.March, 10, 10, 0, 0, 0, paris)}
	log := logger.NewNop()
	return New(gw, submit_booking.NewUseCase(gw, log), clock, log, WithLocation(paris))
}

func validDetails() domain.ContactDetails {
	return domain.ContactDetails{
		FirstName: "marie",
		LastName:  "curie",
		Email:     "marie@example.com",
		Phone:     "06 12 34 56 78",
	}
}

func startedGateway() *fakeGateway {
	gw := newFakeGateway()
	gw.months[march] = map[types.CalendarDate]bool{mar10: true, mar11: true}
	gw.slots[mar10] = []domain.TimeSlot{{Time: nine, Available: true}, {Time: nineThirty, Available: false}}
	gw.slots[mar11] = []domain.TimeSlot{{Time: types.TimeOfDay{Hour: 14}, Available: true}}
	return gw
}

func TestSession_EndToEnd(t *testing.T) {
	gw := startedGateway()
	s := newTestSession(t, gw)
	ctx := context.Background()

	require.IsType(t, Loading{}, s.State())
	require.NoError(t, s.Start(ctx))

	ds, ok := s.State().(DateSelection)
	require.True(t, ok)
	assert.Equal(t, march, ds.Month)
	assert.Equal(t, LoadReady, ds.Load)
	assert.Equal(t, mar10, ds.Today)

	require.NoError(t, s.SelectDate(ctx, mar10))
	ts, ok := s.State().(TimeSelection)
	require.True(t, ok)
	assert.Equal(t, LoadReady, ts.Load)
	require.Len(t, ts.Slots.Morning, 2)

	assert.ErrorIs(t, s.SelectTime(nineThirty), ErrInvalidTransition)
	require.NoError(t, s.SelectTime(nine))

	_, err := s.CalendarFile()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, s.Submit(ctx, validDetails()))
	confirmed, ok := s.State().(Confirmed)
	require.True(t, ok)
	assert.Equal(t, "Marie", confirmed.Details.FirstName)
	assert.Equal(t, "CURIE", confirmed.Details.LastName)

	artifact, err := s.CalendarFile()
	require.NoError(t, err)
	assert.Equal(t, "rdv-room-42-2025-03-10.ics", artifact.Filename)
	assert.Equal(t, "text/calendar", artifact.ContentType)
	assert.Contains(t, string(artifact.Data), "DTSTART;TZID=Europe/Paris:20250310T090000")
	assert.Contains(t, string(artifact.Data), "DTEND;TZID=Europe/Paris:20250310T093000")
}

func TestSession_Start_Unavailable(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		gw := newFakeGateway()
		gw.settings = &domain.BookingSettings{Enabled: false}
		s := newTestSession(t, gw)

		require.NoError(t, s.Start(context.Background()))
		st, ok := s.State().(Unavailable)
		require.True(t, ok)
		assert.Equal(t, ReasonDisabled, st.Reason)
		assert.Zero(t, gw.callCount("month:2025-03"))
	})

	t.Run("settings failure fails closed", func(t *testing.T) {
		gw := newFakeGateway()
		gw.settingsErr = gateway.ErrInternal
		s := newTestSession(t, gw)

		err := s.Start(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
		st, ok := s.State().(Unavailable)
		require.True(t, ok)
		assert.Equal(t, ReasonSettingsFailed, st.Reason)

		assert.ErrorIs(t, s.Retry(context.Background()), ErrInvalidTransition)
		_, err = s.NextMonth(context.Background())
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("start twice", func(t *testing.T) {
		s := newTestSession(t, startedGateway())
		require.NoError(t, s.Start(context.Background()))
		assert.ErrorIs(t, s.Start(context.Background()), ErrInvalidTransition)
	})
}

func TestSession_MonthNavigationClamped(t *testing.T) {
	gw := startedGateway()
	s := newTestSession(t, gw)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	moved, err := s.PrevMonth(ctx)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Zero(t, gw.callCount("month:2025-02"))

	moved, err = s.NextMonth(ctx)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, april, s.State().(DateSelection).Month)

	// горизонт 30 дней от 10 марта заканчивается 9 апреля
	moved, err = s.NextMonth(ctx)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, april, s.State().(DateSelection).Month)
	assert.Zero(t, gw.callCount("month:2025-05"))
}

func TestSession_MonthNavigation_LastRequestWins(t *testing.T) {
	gw := startedGateway()
	gw.months[april] = map[types.CalendarDate]bool{{Year: 2025, Month: time.April, Day: 2}: true}
	s := newTestSession(t, gw)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	release := gw.gate("month:2025-04")
	done := make(chan error, 1)
	go func() {
		_, err := s.NextMonth(ctx)
		done <- err
	}()
	require.Equal(t, "month:2025-04", <-gw.started)

	// пользователь вернулся назад, пока апрель еще грузится
	moved, err := s.PrevMonth(ctx)
	require.NoError(t, err)
	require.True(t, moved)

	close(release)
	assert.ErrorIs(t, <-done, ErrStale)

	ds := s.State().(DateSelection)
	assert.Equal(t, march, ds.Month)
	assert.Equal(t, LoadReady, ds.Load)
	day, ok := ds.Grid.Day(mar10)
	require.True(t, ok)
	assert.True(t, day.Available)
}

func TestSession_SlotFetch_LastRequestWins(t *testing.T) {
	gw := startedGateway()
	s := newTestSession(t, gw)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	release := gw.gate("slots:2025-03-10")
	done := make(chan error, 1)
	go func() {
		done <- s.SelectDate(ctx, mar10)
	}()
	require.Equal(t, "slots:2025-03-10", <-gw.started)

	require.NoError(t, s.ChangeDate(ctx))
	ds := s.State().(DateSelection)
	require.NotNil(t, ds.Previous)
	assert.Equal(t, mar10, *ds.Previous)

	require.NoError(t, s.SelectDate(ctx, mar11))

	close(release)
	assert.ErrorIs(t, <-done, ErrStale)

	ts := s.State().(TimeSelection)
	assert.Equal(t, mar11, ts.Date)
	assert.Equal(t, LoadReady, ts.Load)
	require.Len(t, ts.Slots.Afternoon, 1)
	assert.Empty(t, ts.Slots.Morning)

	// 09:00 принадлежит другой дате
	assert.ErrorIs(t, s.SelectTime(nine), ErrInvalidTransition)
}

func TestSession_SelectDate_Rejected(t *testing.T) {
	gw := startedGateway()
	apr20 := types.CalendarDate{Year: 2025, Month: time.April, Day: 20}
	gw.months[april] = map[types.CalendarDate]bool{apr20: true}
	s := newTestSession(t, gw)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	assert.ErrorIs(t, s.SelectDate(ctx, types.CalendarDate{Year: 2025, Month: time.March, Day: 12}), ErrInvalidTransition)
	assert.ErrorIs(t, s.SelectDate(ctx, apr20), ErrInvalidTransition)

	_, err := s.NextMonth(ctx)
	require.NoError(t, err)
	// сервис считает день доступным, но он за горизонтом
	day, ok := s.State().(DateSelection).Grid.Day(apr20)
	require.True(t, ok)
	assert.False(t, day.Available)
	assert.ErrorIs(t, s.SelectDate(ctx, apr20), ErrInvalidTransition)
	assert.IsType(t, DateSelection{}, s.State())
}

func TestSession_LoadFailureAndRetry(t *testing.T) {
	gw := startedGateway()
	gw.monthErr = gateway.ErrInternal
	s := newTestSession(t, gw)
	ctx := context.Background()

	err := s.Start(ctx)
	assert.ErrorIs(t, err, ErrLoadFailed)
	ds := s.State().(DateSelection)
	assert.Equal(t, LoadFailed, ds.Load)
	assert.ErrorIs(t, s.SelectDate(ctx, mar10), ErrInvalidTransition)

	gw.mu.Lock()
	gw.monthErr = nil
	gw.mu.Unlock()

	require.NoError(t, s.Retry(ctx))
	assert.Equal(t, LoadReady, s.State().(DateSelection).Load)
	assert.ErrorIs(t, s.Retry(ctx), ErrInvalidTransition)

	gw.mu.Lock()
	gw.slotsErr = errors.New("boom")
	gw.mu.Unlock()
	assert.ErrorIs(t, s.SelectDate(ctx, mar10), ErrLoadFailed)
	ts := s.State().(TimeSelection)
	assert.Equal(t, LoadFailed, ts.Load)
	assert.Equal(t, mar10, ts.Date)

	gw.mu.Lock()
	gw.slotsErr = nil
	gw.mu.Unlock()
	require.NoError(t, s.Retry(ctx))
	assert.Equal(t, LoadReady, s.State().(TimeSelection).Load)
}

func TestSession_EmptyDayIsNotAnError(t *testing.T) {
	gw := startedGateway()
	gw.slots[mar10] = []domain.TimeSlot{{Time: nine, Available: false}}
	s := newTestSession(t, gw)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	require.NoError(t, s.SelectDate(ctx, mar10))
	ts := s.State().(TimeSelection)
	assert.Equal(t, LoadReady, ts.Load)
	assert.NoError(t, ts.Err)
	assert.True(t, ts.Slots.Empty())
}

func TestSession_SubmitFailureKeepsDetails(t *testing.T) {
	gw := startedGateway()
	gw.bookingErr = &gateway.APIError{StatusCode: 409, Message: "Ce créneau n'est plus disponible"}
	s := newTestSession(t, gw)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.SelectDate(ctx, mar10))
	require.NoError(t, s.SelectTime(nine))

	details := validDetails()
	details.Company = "ACME"
	err := s.Submit(ctx, details)
	require.Error(t, err)

	form := s.State().(ContactForm)
	assert.False(t, form.Submitting)
	assert.Equal(t, "Ce créneau n'est plus disponible", form.Message)
	assert.Equal(t, details, form.Details)
	assert.Equal(t, 1, gw.callCount("booking"))

	// валидация не доходит до сети
	bad := details
	bad.Phone = ""
	require.Error(t, s.Submit(ctx, bad))
	assert.Equal(t, "Téléphone : champ obligatoire", s.State().(ContactForm).Message)
	assert.Equal(t, 1, gw.callCount("booking"))

	gw.mu.Lock()
	gw.bookingErr = nil
	gw.mu.Unlock()
	require.NoError(t, s.Submit(ctx, details))
	assert.IsType(t, Confirmed{}, s.State())
}

func TestSession_SubmitWhileSubmitting(t *testing.T) {
	gw := startedGateway()
	s := newTestSession(t, gw)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.SelectDate(ctx, mar10))
	require.NoError(t, s.SelectTime(nine))

	release := gw.gate("booking")
	done := make(chan error, 1)
	go func() {
		done <- s.Submit(ctx, validDetails())
	}()
	require.Equal(t, "booking", <-gw.started)

	assert.True(t, s.State().(ContactForm).Submitting)
	assert.ErrorIs(t, s.Submit(ctx, validDetails()), ErrInvalidTransition)
	assert.ErrorIs(t, s.ChangeTime(ctx), ErrInvalidTransition)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gw.callCount("booking"))
}

func TestSession_ChangeTimeKeepsDraftAndClearsTime(t *testing.T) {
	gw := startedGateway()
	s := newTestSession(t, gw)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.SelectDate(ctx, mar10))
	require.NoError(t, s.SelectTime(nine))

	draft := validDetails()
	require.NoError(t, s.SaveDraft(draft))

	require.NoError(t, s.ChangeTime(ctx))
	ts := s.State().(TimeSelection)
	assert.Equal(t, mar10, ts.Date)
	assert.Equal(t, 2, gw.callCount("slots:2025-03-10"))

	require.NoError(t, s.SelectTime(nine))
	form := s.State().(ContactForm)
	assert.Equal(t, draft, form.Details)
	assert.Equal(t, nine, form.Time)

	// новая дата сбрасывает выбранное время
	require.NoError(t, s.ChangeTime(ctx))
	require.NoError(t, s.ChangeDate(ctx))
	require.NoError(t, s.SelectDate(ctx, mar11))
	ts = s.State().(TimeSelection)
	assert.Equal(t, mar11, ts.Date)
	assert.ErrorIs(t, s.SelectTime(nine), ErrInvalidTransition)
}

func TestSession_Subscribe(t *testing.T) {
	gw := startedGateway()
	s := newTestSession(t, gw)

	var stages []Stage
	unsubscribe := s.Subscribe(func(st State) {
		stages = append(stages, st.Stage())
	})

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, []Stage{StageDateSelection, StageDateSelection}, stages)

	unsubscribe()
	require.NoError(t, s.SelectDate(context.Background(), mar10))
	assert.Len(t, stages, 2)
}
