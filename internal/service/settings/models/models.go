package models

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// SettingsResponse публичные настройки бронирования (GET /settings)
type SettingsResponse struct {
	Enabled         bool `json:"enabled"`
	DurationMinutes int  `json:"duration_minutes"`
	MaxAdvanceDays  int  `json:"max_advance_days"`
}

// AdminSettingsResponse полные настройки для администратора
type AdminSettingsResponse struct {
	SettingsResponse
	MinNoticeMinutes int        `json:"min_notice_minutes"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// UpdateSettingsRequest запрос на обновление настроек.
// Все поля опциональны - обновляются только переданные значения.
type UpdateSettingsRequest struct {
	Enabled          *bool `json:"enabled,omitempty"`
	DurationMinutes  *int  `json:"duration_minutes,omitempty"`
	MaxAdvanceDays   *int  `json:"max_advance_days,omitempty"`
	MinNoticeMinutes *int  `json:"min_notice_minutes,omitempty"`
}

// IsEmpty возвращает true, если не передано ни одного поля
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.Enabled == nil && r.DurationMinutes == nil && r.MaxAdvanceDays == nil && r.MinNoticeMinutes == nil
}

// ApplyTo применяет обновления к существующим настройкам
func (r *UpdateSettingsRequest) ApplyTo(s *domain.GatewaySettings) {
	if r.Enabled != nil {
		s.Enabled = *r.Enabled
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.MaxAdvanceDays != nil {
		s.MaxAdvanceDays = *r.MaxAdvanceDays
	}
	if r.MinNoticeMinutes != nil {
		s.MinNoticeMinutes = *r.MinNoticeMinutes
	}
}

// FromDomain конвертирует domain модель в публичный DTO
func FromDomain(s *domain.GatewaySettings) *SettingsResponse {
	return &SettingsResponse{
		Enabled:         s.Enabled,
		DurationMinutes: s.DurationMinutes,
		MaxAdvanceDays:  s.MaxAdvanceDays,
	}
}

// FromDomainAdmin конвертирует domain модель в DTO администратора
func FromDomainAdmin(s *domain.GatewaySettings) *AdminSettingsResponse {
	resp := &AdminSettingsResponse{
		SettingsResponse: *FromDomain(s),
		MinNoticeMinutes: s.MinNoticeMinutes,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
