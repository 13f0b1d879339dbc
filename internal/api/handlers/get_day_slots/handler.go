package get_day_slots

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

const (
	msgMissingDate = "Le paramètre date est obligatoire."
	msgInvalidDate = "Le paramètre date doit être au format AAAA-MM-JJ."
)

type Handler struct {
	service AvailabilityService
	metrics Metrics
	logger  Logger
}

func NewHandler(service AvailabilityService, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := types.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := h.service.DaySlots(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /slots - Failed to compute slots for %s: %v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	if h.metrics != nil {
		available := 0
		for _, s := range slots {
			if s.Available {
				available++
			}
		}
		h.metrics.ObserveSlots(available, len(slots)-available)
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(slots))
}
