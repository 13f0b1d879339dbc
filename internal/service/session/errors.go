package session

import "errors"

var (
	// ErrInvalidTransition переход недопустим в текущем состоянии; состояние не меняется
	ErrInvalidTransition = errors.New("session: invalid transition")

	// ErrStale запрос был вытеснен более новым, его результат отброшен
	ErrStale = errors.New("session: request superseded")

	// ErrLoadFailed не удалось загрузить данные этапа; доступен Retry
	ErrLoadFailed = errors.New("session: load failed")

	// ErrUnavailable бронирование выключено или настройки не загрузились
	ErrUnavailable = errors.New("session: booking unavailable")
)
