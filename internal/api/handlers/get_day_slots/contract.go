package get_day_slots

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

type AvailabilityService interface {
	DaySlots(ctx context.Context, date types.CalendarDate) ([]domain.TimeSlot, error)
}

// Metrics учет выданных слотов
type Metrics interface {
	ObserveSlots(available, taken int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
