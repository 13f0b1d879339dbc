package cli

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/calendarfile"
	"github.com/m04kA/SMC-ConsultationService/internal/service/session"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Prompter интерфейс построчного ввода
type Prompter interface {
	Prompt(label string) (string, error)
}

// BookingSession интерфейс мастера бронирования
type BookingSession interface {
	Start(ctx context.Context) error
	State() session.State
	NextMonth(ctx context.Context) (bool, error)
	PrevMonth(ctx context.Context) (bool, error)
	SelectDate(ctx context.Context, date types.CalendarDate) error
	ChangeDate(ctx context.Context) error
	SelectTime(t types.TimeOfDay) error
	ChangeTime(ctx context.Context) error
	SaveDraft(details domain.ContactDetails) error
	Submit(ctx context.Context, details domain.ContactDetails) error
	Retry(ctx context.Context) error
	CalendarFile() (calendarfile.Artifact, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
