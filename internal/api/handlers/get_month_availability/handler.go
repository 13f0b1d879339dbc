package get_month_availability

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

const (
	msgMissingMonth = "Le paramètre month est obligatoire."
	msgInvalidMonth = "Le paramètre month doit être au format AAAA-MM."
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	month, err := types.ParseYearMonth(monthStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid month %q: %v", monthStr, err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	days, err := h.service.MonthAvailability(r.Context(), month)
	if err != nil {
		h.logger.Error("GET /availability - Failed to compute %s: %v", month, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(days))
}
