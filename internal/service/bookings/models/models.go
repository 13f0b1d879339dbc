package models

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// ListBookingsRequest запрос на выборку бронирований за период
type ListBookingsRequest struct {
	From             types.CalendarDate
	To               types.CalendarDate
	IncludeCancelled bool
}

// BookingResponse бронирование для администратора
type BookingResponse struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	MeetingLink     string  `json:"meeting_link"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Company         *string `json:"company,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		Date:            b.BookingDate.String(),
		Time:            b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		MeetingLink:     b.MeetingLink,
		FirstName:       b.FirstName,
		LastName:        b.LastName,
		Email:           b.Email,
		Phone:           b.Phone,
		Company:         b.Company,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookings конвертирует список domain моделей
func FromDomainBookings(list []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(list))
	for _, b := range list {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result, Total: len(result)}
}
