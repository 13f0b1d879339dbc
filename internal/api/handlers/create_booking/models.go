package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	createBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company,omitempty"`
	Date      string `json:"date"` // "2025-03-11"
	Time      string `json:"time"` // "09:30"
}

// BookingEnvelope HTTP response model
type BookingEnvelope struct {
	Booking BookingPayload `json:"booking"`
}

// BookingPayload подтвержденное бронирование
type BookingPayload struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
	MeetingLink string `json:"meeting_link"`
}

// errInvalidDate и errInvalidTime различают ошибки разбора
var (
	errInvalidDate = fmt.Errorf("invalid date")
	errInvalidTime = fmt.Errorf("invalid time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.ParseTimeOfDay(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Details: domain.ContactDetails{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Phone:     r.Phone,
			Company:   r.Company,
		},
		Date: date,
		Time: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingEnvelope {
	return &BookingEnvelope{
		Booking: BookingPayload{
			Date:        resp.Booking.BookingDate.String(),
			Time:        resp.Booking.StartTime.String(),
			Duration:    resp.Booking.DurationMinutes,
			MeetingLink: resp.Booking.MeetingLink,
		},
	}
}
