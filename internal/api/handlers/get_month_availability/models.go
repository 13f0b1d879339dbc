package get_month_availability

import "github.com/m04kA/SMC-ConsultationService/internal/domain"

// DayResponse элемент ответа GET /availability
type DayResponse struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// FromDomain конвертирует дни месяца в HTTP ответ
func FromDomain(days []domain.CalendarDay) []DayResponse {
	result := make([]DayResponse, 0, len(days))
	for _, d := range days {
		result = append(result, DayResponse{Date: d.Date.String(), Available: d.Available})
	}
	return result
}
