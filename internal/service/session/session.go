package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/calendarfile"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// tag идентифицирует запрос: результат применяется, только если tag совпадает с текущим ожидаемым
type tag struct {
	seq   uint64
	stage Stage
	key   string
}

type pendingRequest struct {
	tag    tag
	cancel context.CancelFunc
}

type listener struct {
	id int
	fn func(State)
}

// Session мастер бронирования одного посетителя.
// Методы безопасны для конкурентного вызова. Методы с загрузкой блокируются до завершения
// своего запроса и возвращают ErrStale, если его вытеснил более новый.
type Session struct {
	gateway   Gateway
	submitter Submitter
	clock     TimeProvider
	logger    Logger

	location *time.Location
	calendar calendarfile.Options

	mu       sync.Mutex
	state    State
	version  uint64
	started  bool
	settings domain.BookingSettings
	seq      uint64
	pending  *pendingRequest
	// draft контактные данные, сохраняемые при возврате к выбору времени
	draft domain.ContactDetails

	listeners []listener
	nextID    int

	notifyMu  sync.Mutex
	delivered uint64
}

// Option настройка сессии
type Option func(*Session)

// WithLocation часовой пояс, в котором определяется "сегодня"
func WithLocation(loc *time.Location) Option {
	return func(s *Session) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithCalendarOptions параметры генерации .ics
func WithCalendarOptions(opts calendarfile.Options) Option {
	return func(s *Session) {
		s.calendar = opts
	}
}

// New создает сессию в состоянии Loading
func New(gateway Gateway, submitter Submitter, clock TimeProvider, logger Logger, opts ...Option) *Session {
	s := &Session{
		gateway:   gateway,
		submitter: submitter,
		clock:     clock,
		logger:    logger,
		state:     Loading{},
	}
	if loc, err := time.LoadLocation(domain.DefaultTimezone); err == nil {
		s.location = loc
	} else {
		s.location = time.Local
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.calendar.TZID == "" {
		s.calendar.TZID = s.location.String()
	}
	return s
}

// State возвращает снимок текущего состояния
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe регистрирует обработчик изменений состояния и возвращает функцию отписки.
// Обработчик не должен синхронно вызывать переходы сессии.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Start загружает настройки и открывает выбор даты на текущем месяце.
// Ошибка загрузки настроек переводит сессию в Unavailable.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("%w: session already started", ErrInvalidTransition)
	}
	s.started = true
	fetchCtx, t := s.beginLocked(ctx, StageLoading, "settings")
	s.mu.Unlock()

	settings, err := s.gateway.GetSettings(fetchCtx)

	s.mu.Lock()
	if !s.finishLocked(t) {
		s.mu.Unlock()
		return ErrStale
	}

	switch {
	case err != nil:
		s.logger.Error("Session: failed to load settings: %v", err)
		s.setStateLocked(Unavailable{Reason: ReasonSettingsFailed, Err: err})
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case !settings.Enabled:
		s.logger.Info("Session: booking is disabled")
		s.setStateLocked(Unavailable{Reason: ReasonDisabled})
		s.mu.Unlock()
		s.notify()
		return nil
	}

	s.settings = *settings
	s.logger.Info("Session: started, duration=%d min, horizon=%d days", settings.DurationMinutes, settings.MaxAdvanceDays)

	today := s.todayLocked()
	return s.loadMonthLocked(ctx, DateSelection{
		Month: today.YearMonth(),
	})
}

// CalendarFile возвращает .ics файл подтвержденного бронирования
func (s *Session) CalendarFile() (calendarfile.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	confirmed, ok := s.state.(Confirmed)
	if !ok {
		return calendarfile.Artifact{}, fmt.Errorf("%w: no confirmed booking in %s", ErrInvalidTransition, s.state.Stage())
	}
	return calendarfile.NewArtifact(confirmed.Booking, s.calendar), nil
}

// Retry повторяет неудавшуюся или незавершенную загрузку текущего этапа
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	switch st := s.state.(type) {
	case DateSelection:
		if st.Load == LoadReady {
			s.mu.Unlock()
			return fmt.Errorf("%w: month %s already loaded", ErrInvalidTransition, st.Month)
		}
		s.logger.Info("Session: retry month %s", st.Month)
		return s.loadMonthLocked(ctx, st)
	case TimeSelection:
		if st.Load == LoadReady {
			s.mu.Unlock()
			return fmt.Errorf("%w: slots for %s already loaded", ErrInvalidTransition, st.Date)
		}
		s.logger.Info("Session: retry slots %s", st.Date)
		return s.loadSlotsLocked(ctx, st.Date)
	default:
		stage := s.state.Stage()
		s.mu.Unlock()
		return fmt.Errorf("%w: nothing to retry in %s", ErrInvalidTransition, stage)
	}
}

// beginLocked выдает новый tag и отменяет предыдущий ожидающий запрос
func (s *Session) beginLocked(ctx context.Context, stage Stage, key string) (context.Context, tag) {
	s.cancelPendingLocked()

	s.seq++
	t := tag{seq: s.seq, stage: stage, key: key}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.pending = &pendingRequest{tag: t, cancel: cancel}
	return fetchCtx, t
}

// finishLocked проверяет, что запрос все еще актуален, и снимает его с ожидания
func (s *Session) finishLocked(t tag) bool {
	if s.pending == nil || s.pending.tag != t {
		s.logger.Debug("Session: discarded stale response seq=%d stage=%s key=%s", t.seq, t.stage, t.key)
		return false
	}
	s.pending.cancel()
	s.pending = nil
	return true
}

func (s *Session) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.cancel()
		s.pending = nil
	}
}

func (s *Session) setStateLocked(st State) {
	s.state = st
	s.version++
}

// notify доставляет подписчикам последнее состояние; более старые версии не доставляются
func (s *Session) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	st, version := s.state, s.version
	listeners := make([]listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if version <= s.delivered {
		return
	}
	s.delivered = version

	for _, l := range listeners {
		l.fn(st)
	}
}

func (s *Session) todayLocked() types.CalendarDate {
	return types.DateOf(s.clock.Now().In(s.location))
}

func (s *Session) horizonLocked() domain.Horizon {
	return s.settings.Horizon(s.todayLocked())
}
