package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/config"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByPeriod(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// SettingsProvider источник действующих настроек бронирования
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.GatewaySettings, error)
}

// Schedule недельное расписание приема
type Schedule interface {
	ForWeekday(day time.Weekday) ([]config.Interval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
