package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/service/settings/models"
)

type Handler struct {
	service SettingsService
	admin   bool
	logger  Logger
}

// NewHandler публичный вариант: enabled, duration_minutes, max_advance_days
func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// NewAdminHandler вариант для администратора, с min_notice_minutes и updated_at
func NewAdminHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{service: service, admin: true, logger: logger}
}

// Handle GET /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /settings - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if h.admin {
		handlers.RespondJSON(w, http.StatusOK, models.FromDomainAdmin(result))
		return
	}
	handlers.RespondJSON(w, http.StatusOK, models.FromDomain(result))
}
