package session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Gateway интерфейс чтения доступности
type Gateway interface {
	GetSettings(ctx context.Context) (*domain.BookingSettings, error)
	GetMonthAvailability(ctx context.Context, month types.YearMonth) (map[types.CalendarDate]bool, error)
	GetDaySlots(ctx context.Context, date types.CalendarDate) ([]domain.TimeSlot, error)
}

// Submitter интерфейс отправки бронирования
type Submitter interface {
	Execute(ctx context.Context, req *submit_booking.Request) (*submit_booking.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
