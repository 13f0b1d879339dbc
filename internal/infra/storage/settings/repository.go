package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

// singletonID настройки хранятся одной строкой
const singletonID = 1

// Repository репозиторий настроек бронирования
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает сохраненные настройки
func (r *Repository) Get(ctx context.Context) (*domain.GatewaySettings, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"enabled",
		"duration_minutes",
		"max_advance_days",
		"min_notice_minutes",
		"updated_at",
	).
		From("booking_settings").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.GatewaySettings
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.Enabled,
		&s.DurationMinutes,
		&s.MaxAdvanceDays,
		&s.MinNoticeMinutes,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

// Upsert создает или заменяет настройки
func (r *Repository) Upsert(ctx context.Context, s *domain.GatewaySettings) (*domain.GatewaySettings, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_settings").
		Columns(
			"id",
			"enabled",
			"duration_minutes",
			"max_advance_days",
			"min_notice_minutes",
		).
		Values(
			singletonID,
			s.Enabled,
			s.DurationMinutes,
			s.MaxAdvanceDays,
			s.MinNoticeMinutes,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			duration_minutes = EXCLUDED.duration_minutes,
			max_advance_days = EXCLUDED.max_advance_days,
			min_notice_minutes = EXCLUDED.min_notice_minutes,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	result := *s
	result.UpdatedAt = updatedAt.Time
	return &result, nil
}
