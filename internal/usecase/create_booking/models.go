package create_booking

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Details domain.ContactDetails
	Date    types.CalendarDate
	Time    types.TimeOfDay
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
