package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
)

// maxListDays максимальная длина запрашиваемого периода
const maxListDays = 366

// Service сервис для просмотра бронирований администратором
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования за период, отсортированные по дате и времени
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrInvalidTimeRange, req.To, req.From)
	}
	if req.From.AddDays(maxListDays).Before(req.To) {
		return nil, fmt.Errorf("%w: period exceeds %d days", ErrInvalidTimeRange, maxListDays)
	}

	list, err := s.bookingRepo.GetByPeriod(ctx, domain.BookingsFilter{
		StartDate:       req.From,
		EndDate:         req.To,
		IncludeInactive: req.IncludeCancelled,
	})
	if err != nil {
		s.logger.Error("List: repository error for %s..%s: %v", req.From, req.To, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: %d bookings for %s..%s", len(list), req.From, req.To)
	return models.FromDomainBookings(list), nil
}
