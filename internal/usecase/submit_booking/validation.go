package submit_booking

import (
	"errors"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// validateRequest проверяет выбор слота и контактные данные.
// Возвращает запрос с нормализованными данными.
func validateRequest(req *Request) (*Request, error) {
	if req == nil {
		return nil, &ValidationError{Message: "Requête vide."}
	}
	if req.Date.IsZero() {
		return nil, &ValidationError{Message: "Veuillez choisir une date."}
	}
	if err := req.Time.Validate(); err != nil {
		return nil, &ValidationError{Message: "Veuillez choisir un horaire."}
	}

	details := req.Details.Normalize()
	if err := details.Validate(); err != nil {
		var contactErr *domain.ContactError
		if errors.As(err, &contactErr) {
			return nil, &ValidationError{Message: contactErr.Message()}
		}
		return nil, &ValidationError{Message: err.Error()}
	}

	return &Request{Date: req.Date, Time: req.Time, Details: details}, nil
}
