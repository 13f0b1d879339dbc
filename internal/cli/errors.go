package cli

import "errors"

var (
	// ErrAborted пользователь прервал ввод (q, Ctrl+C, Ctrl+D)
	ErrAborted = errors.New("cli: aborted by user")

	// ErrUnavailable бронирование недоступно: настройки не загрузились
	ErrUnavailable = errors.New("cli: booking unavailable")
)
