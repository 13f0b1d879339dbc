package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	createBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "La demande est invalide."
	msgInvalidDate        = "La date doit être au format AAAA-MM-JJ."
	msgInvalidTime        = "L'heure doit être au format HH:MM."
	msgInvalidContact     = "Coordonnées invalides"
	msgInvalidInput       = "Les informations fournies sont invalides."
	msgBookingDisabled    = "La prise de rendez-vous est momentanément indisponible."
	msgInvalidBookingDate = "Cette date n'est pas réservable."
	msgInvalidTimeSlot    = "Cet horaire ne correspond à aucun créneau proposé."
	msgTooLateToBook      = "Ce créneau est trop proche pour être réservé."
	msgSlotNotAvailable   = "Ce créneau vient d'être réservé. Veuillez en choisir un autre."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /booking - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, req, err)
		return
	}

	h.logger.Info("POST /booking - Booking created: booking_id=%d, date=%s, time=%s",
		result.Booking.ID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, req CreateBookingRequest, err error) {
	var contactErr *domain.ContactError

	switch {
	case errors.As(err, &contactErr):
		handlers.RespondBadRequest(w, msgInvalidContact+". "+contactErr.Message())

	case errors.Is(err, createBooking.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		h.logger.Warn("POST /booking - Slot not available: date=%s, time=%s", req.Date, req.Time)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, createBooking.ErrBookingDisabled):
		handlers.RespondError(w, http.StatusServiceUnavailable, msgBookingDisabled)

	case errors.Is(err, createBooking.ErrInvalidDate):
		handlers.RespondBadRequest(w, msgInvalidBookingDate)

	case errors.Is(err, createBooking.ErrInvalidTimeSlot):
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createBooking.ErrTooLateToBook):
		handlers.RespondBadRequest(w, msgTooLateToBook)

	default:
		h.logger.Error("POST /booking - Failed to create booking: date=%s, time=%s, error=%v",
			req.Date, req.Time, err)
		handlers.RespondInternalError(w)
	}
}
