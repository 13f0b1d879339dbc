package session

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/usecase/build_calendar"
	"github.com/m04kA/SMC-ConsultationService/internal/usecase/partition_slots"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Stage этап мастера бронирования
type Stage int

const (
	StageLoading Stage = iota
	StageUnavailable
	StageDateSelection
	StageTimeSelection
	StageContactForm
	StageConfirmed
)

func (s Stage) String() string {
	switch s {
	case StageLoading:
		return "loading"
	case StageUnavailable:
		return "unavailable"
	case StageDateSelection:
		return "date_selection"
	case StageTimeSelection:
		return "time_selection"
	case StageContactForm:
		return "contact_form"
	case StageConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// LoadStatus состояние загрузки данных этапа
type LoadStatus int

const (
	LoadPending LoadStatus = iota
	LoadReady
	LoadFailed
)

func (l LoadStatus) String() string {
	switch l {
	case LoadPending:
		return "pending"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UnavailableReason причина терминального состояния Unavailable
type UnavailableReason int

const (
	ReasonDisabled UnavailableReason = iota
	ReasonSettingsFailed
)

func (r UnavailableReason) String() string {
	if r == ReasonSettingsFailed {
		return "settings_failed"
	}
	return "disabled"
}

// State снимок состояния сессии. Варианты: Loading, Unavailable, DateSelection,
// TimeSelection, ContactForm, Confirmed. Снимки только для чтения.
type State interface {
	Stage() Stage
	isState()
}

// Loading настройки еще загружаются
type Loading struct{}

// Unavailable терминальное состояние: бронирование выключено или настройки недоступны
type Unavailable struct {
	Reason UnavailableReason
	Err    error
}

// DateSelection выбор даты в сетке месяца
type DateSelection struct {
	Settings domain.BookingSettings
	Today    types.CalendarDate
	Month    types.YearMonth
	Bounds   build_calendar.MonthRange
	// Grid заполнена доступностью только при Load == LoadReady
	Grid build_calendar.Grid
	Load LoadStatus
	Err  error
	// Previous ранее выбранная дата, только для подсветки
	Previous *types.CalendarDate
}

// TimeSelection выбор времени внутри выбранной даты
type TimeSelection struct {
	Settings domain.BookingSettings
	Date     types.CalendarDate
	Slots    partition_slots.Buckets
	Load     LoadStatus
	Err      error
}

// ContactForm ввод контактных данных для выбранного слота
type ContactForm struct {
	Settings   domain.BookingSettings
	Date       types.CalendarDate
	Time       types.TimeOfDay
	Details    domain.ContactDetails
	Submitting bool
	Err        error
	// Message текст ошибки отправки для пользователя
	Message string
}

// Confirmed бронирование подтверждено сервисом
type Confirmed struct {
	Booking domain.ConfirmedBooking
	Details domain.ContactDetails
}

func (Loading) Stage() Stage       { return StageLoading }
func (Unavailable) Stage() Stage   { return StageUnavailable }
func (DateSelection) Stage() Stage { return StageDateSelection }
func (TimeSelection) Stage() Stage { return StageTimeSelection }
func (ContactForm) Stage() Stage   { return StageContactForm }
func (Confirmed) Stage() Stage     { return StageConfirmed }

func (Loading) isState()       {}
func (Unavailable) isState()   {}
func (DateSelection) isState() {}
func (TimeSelection) isState() {}
func (ContactForm) isState()   {}
func (Confirmed) isState()     {}
