package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ConsultationService/internal/service/settings/models"
)

// Service сервис настроек бронирования
type Service struct {
	repo     SettingsRepository
	defaults domain.GatewaySettings
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек.
// defaults используются, пока настройки не сохранены в БД.
func NewService(repo SettingsRepository, defaults domain.GatewaySettings, logger Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Get возвращает действующие настройки: сохраненные или значения по умолчанию
func (s *Service) Get(ctx context.Context) (*domain.GatewaySettings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			defaults := s.defaults
			return &defaults, nil
		}
		s.logger.Error("Settings.Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return current, nil
}

// Update частично обновляет настройки и сохраняет результат
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*domain.GatewaySettings, error) {
	if req == nil || req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	updated := *current
	req.ApplyTo(&updated)

	if err := validateSettings(&updated); err != nil {
		s.logger.Warn("Settings.Update: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("Settings.Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Settings.Update: enabled=%t, duration=%d, horizon=%d, notice=%d",
		saved.Enabled, saved.DurationMinutes, saved.MaxAdvanceDays, saved.MinNoticeMinutes)
	return saved, nil
}

// validateSettings валидирует параметры настроек
func validateSettings(s *domain.GatewaySettings) error {
	if s.DurationMinutes < domain.MinSlotDurationMinutes || s.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration_minutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if s.MaxAdvanceDays < domain.MinAdvanceDays || s.MaxAdvanceDays > domain.MaxAdvanceDays {
		return fmt.Errorf("%w: max_advance_days must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceDays, domain.MaxAdvanceDays)
	}
	if s.MinNoticeMinutes < 0 || s.MinNoticeMinutes > domain.MaxMinNoticeMinutes {
		return fmt.Errorf("%w: min_notice_minutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxMinNoticeMinutes)
	}
	return nil
}
