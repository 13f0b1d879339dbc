package settings

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.GatewaySettings, error)
	Upsert(ctx context.Context, s *domain.GatewaySettings) (*domain.GatewaySettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
