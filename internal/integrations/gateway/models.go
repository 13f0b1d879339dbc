package gateway

// SettingsResponse модель ответа GET /settings
type SettingsResponse struct {
	Enabled         bool `json:"enabled"`
	DurationMinutes int  `json:"duration_minutes"`
	MaxAdvanceDays  int  `json:"max_advance_days"`
}

// DayAvailability элемент ответа GET /availability
type DayAvailability struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Available bool   `json:"available"`
}

// SlotResponse элемент ответа GET /slots
type SlotResponse struct {
	Time      string `json:"time"` // HH:MM
	Available bool   `json:"available"`
}

// BookingRequest тело запроса POST /booking
type BookingRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company,omitempty"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
}

// BookingEnvelope ответ POST /booking
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

// ErrorResponse модель ошибки от сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
