package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сборка запроса, транспорт)
	ErrInternal = errors.New("gateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("gateway client: invalid response")

	// ErrRejected возвращается, когда сервис ответил статусом вне 2xx
	ErrRejected = errors.New("gateway client: request rejected")
)

// APIError ответ сервиса со статусом вне 2xx.
// Message - текст ошибки от сервиса без изменений, его показывают пользователю.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap позволяет проверять errors.Is(err, ErrRejected)
func (e *APIError) Unwrap() error {
	return ErrRejected
}
