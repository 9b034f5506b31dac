package settings

import "errors"

var (
	// ErrInvalidSessionDuration возвращается при недопустимой длительности сессии
	ErrInvalidSessionDuration = errors.New("invalid session duration")

	// ErrInvalidLabStatus возвращается при неизвестном статусе лаборатории
	ErrInvalidLabStatus = errors.New("invalid lab status")

	// ErrInvalidCutoff возвращается при недопустимом пороге отсечки бронирования
	ErrInvalidCutoff = errors.New("invalid booking cutoff")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings service: internal error")
)
