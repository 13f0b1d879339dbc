package domain

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// BookingSettings represents the global booking configuration.
// Loaded once per session and never mutated afterwards.
type BookingSettings struct {
	Enabled         bool
	DurationMinutes int
	MaxAdvanceDays  int
}

// Horizon returns the bookable window starting at today
func (s BookingSettings) Horizon(today types.CalendarDate) Horizon {
	return Horizon{Today: today, MaxAdvanceDays: s.MaxAdvanceDays}
}

// Horizon is the closed range [Today, Today+MaxAdvanceDays] of bookable dates
type Horizon struct {
	Today          types.CalendarDate
	MaxAdvanceDays int
}

// Last returns the last bookable date
func (h Horizon) Last() types.CalendarDate {
	return h.Today.AddDays(h.MaxAdvanceDays)
}

// Contains returns true if the date is neither before today nor after the last bookable date
func (h Horizon) Contains(d types.CalendarDate) bool {
	return !d.Before(h.Today) && !d.After(h.Last())
}

// GatewaySettings настройки, которые хранит сервис доступности.
// MinNoticeMinutes клиенту не отдается: он учитывается при расчете слотов.
type GatewaySettings struct {
	BookingSettings
	MinNoticeMinutes int
	UpdatedAt        time.Time
}
