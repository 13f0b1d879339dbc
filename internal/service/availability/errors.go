package availability

import "errors"

var (
	// ErrBookingDisabled возвращается, когда прием бронирований выключен
	ErrBookingDisabled = errors.New("availability: booking is disabled")

	// ErrDateOutOfRange возвращается для даты в прошлом или за горизонтом бронирования
	ErrDateOutOfRange = errors.New("availability: date is out of the booking horizon")

	// ErrSlotNotOffered возвращается, когда время не совпадает ни с одним слотом расписания
	ErrSlotNotOffered = errors.New("availability: time is not an offered slot")

	// ErrTooLate возвращается, когда до начала слота меньше минимального уведомления
	ErrTooLate = errors.New("availability: too late to book this slot")

	// ErrSlotTaken возвращается, когда слот пересекается с активным бронированием
	ErrSlotTaken = errors.New("availability: slot is already taken")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
