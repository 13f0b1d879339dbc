package get_day_slots

import "github.com/m04kA/SMC-ConsultationService/internal/domain"

// SlotResponse элемент ответа GET /slots
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// FromDomain конвертирует слоты в HTTP ответ, сохраняя порядок
func FromDomain(slots []domain.TimeSlot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, SlotResponse{Time: s.Time.String(), Available: s.Available})
	}
	return result
}
