package submit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных; запрос в сеть не выполняется
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrRejected возвращается, когда сервис отклонил или не принял бронирование
	ErrRejected = errors.New("submit_booking: booking rejected")
)

// GenericFailureMessage показывается, если сервис не вернул собственного сообщения
const GenericFailureMessage = "La réservation n'a pas pu être effectuée. Veuillez réessayer."

// ValidationError данные формы не прошли проверку, запрос не отправлялся
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// UserMessage текст ошибки для формы
func UserMessage(err error) string {
	var subErr *SubmissionError
	if errors.As(err, &subErr) {
		return subErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}
	return GenericFailureMessage
}

// SubmissionError ошибка отправки с сообщением для пользователя.
// Message либо текст сервиса без изменений, либо GenericFailureMessage.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return "submit_booking: " + e.Message + ": " + e.Err.Error()
	}
	return "submit_booking: " + e.Message
}

func (e *SubmissionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRejected, e.Err}
	}
	return []error{ErrRejected}
}
