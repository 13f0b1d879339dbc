package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability"
	"github.com/m04kA/SMC-ConsultationService/pkg/metrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	settings        SettingsProvider
	schedule        Schedule
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         Metrics
	loc             *time.Location
	meetingBaseURL  string
	newMeetingToken func() string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	schedule Schedule,
	txManager TransactionManager,
	metrics Metrics,
	loc *time.Location,
	meetingBaseURL string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		settings:        settings,
		schedule:        schedule,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		metrics:         metrics,
		loc:             loc,
		meetingBaseURL:  strings.TrimRight(meetingBaseURL, "/"),
		newMeetingToken: uuid.NewString,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка слота и вставка идут в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s", req.Date, req.Time)

	// 1. Валидация входных данных
	details := req.Details.Normalize()
	if err := validateRequest(req, details); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observe(metrics.OutcomeRejected)
		return nil, err
	}

	// 2. Действующие настройки
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		uc.observe(metrics.OutcomeFailed)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	planner := availability.NewPlanner(*settings, uc.schedule, uc.timeProvider.Now(), uc.loc)

	var result *domain.Booking

	// 3. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Активные бронирования дня с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByPeriod(txCtx, domain.BookingsFilter{
			StartDate: req.Date,
			EndDate:   req.Date,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3.2. Слот должен быть в расписании и свободен
		if err := planner.Check(req.Date, req.Time, bookings); err != nil {
			return toUseCaseError(err)
		}

		// 3.3. Сохраняем бронирование
		booking := &domain.Booking{
			BookingDate:     req.Date,
			StartTime:       req.Time,
			DurationMinutes: planner.DurationMinutes(),
			Status:          domain.StatusConfirmed,
			MeetingLink:     uc.meetingBaseURL + "/" + uc.newMeetingToken(),
			FirstName:       details.FirstName,
			LastName:        details.LastName,
			Email:           details.Email,
			Phone:           details.Phone,
		}
		if details.Company != "" {
			booking.Company = ptr.Ptr(details.Company)
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			err = fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		uc.logFailure(req, err)
		return nil, err
	}

	uc.observe(metrics.OutcomeCreated)
	uc.logger.Info("CreateBooking: created booking id=%d for %s %s", result.ID, result.BookingDate, result.StartTime)
	return &Response{Booking: result}, nil
}

func (uc *UseCase) logFailure(req *Request, err error) {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("CreateBooking: slot %s %s already taken", req.Date, req.Time)
		uc.observe(metrics.OutcomeSlotTaken)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		uc.observe(metrics.OutcomeFailed)
	case errors.Is(err, txmanager.ErrTransaction):
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		uc.observe(metrics.OutcomeFailed)
	default:
		uc.logger.Warn("CreateBooking: rejected: %v", err)
		uc.observe(metrics.OutcomeRejected)
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(outcome)
	}
}

// toUseCaseError переводит ошибки планировщика в ошибки use case
func toUseCaseError(err error) error {
	switch {
	case errors.Is(err, availability.ErrBookingDisabled):
		return ErrBookingDisabled
	case errors.Is(err, availability.ErrDateOutOfRange):
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	case errors.Is(err, availability.ErrSlotNotOffered):
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	case errors.Is(err, availability.ErrTooLate):
		return fmt.Errorf("%w: %v", ErrTooLateToBook, err)
	case errors.Is(err, availability.ErrSlotTaken):
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, details domain.ContactDetails) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}
	if err := details.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
