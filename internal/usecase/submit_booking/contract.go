package submit_booking

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/gateway"
)

// GatewayClient интерфейс клиента сервиса доступности
type GatewayClient interface {
	CreateBooking(ctx context.Context, req *gateway.BookingRequest) (*domain.ConfirmedBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
