package submit_booking

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Request модель запроса на бронирование выбранного слота
type Request struct {
	Date    types.CalendarDate
	Time    types.TimeOfDay
	Details domain.ContactDetails
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	Booking domain.ConfirmedBooking
	// Details нормализованные контактные данные, отправленные сервису
	Details domain.ContactDetails
}
