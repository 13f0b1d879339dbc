package domain

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// BookingStatus represents the status of a stored booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a consultation booking stored by the gateway
type Booking struct {
	ID              int64
	BookingDate     types.CalendarDate
	StartTime       types.TimeOfDay
	DurationMinutes int
	Status          BookingStatus
	MeetingLink     string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// EndTime returns the end of the booking within the day
func (b *Booking) EndTime() (types.TimeOfDay, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// ConfirmedBooking is the client-side result of a successful reservation.
// Created once per session and immutable afterwards.
type ConfirmedBooking struct {
	Date            types.CalendarDate
	Time            types.TimeOfDay
	DurationMinutes int
	MeetingLink     string
}

// BookingsFilter фильтр для выборки бронирований за период
type BookingsFilter struct {
	StartDate       types.CalendarDate
	EndDate         types.CalendarDate
	IncludeInactive bool
}
