package materials

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("material request not found")

	// ErrAlreadyDecided возвращается при повторном решении по заявке
	ErrAlreadyDecided = errors.New("material request already decided")

	// ErrInvalidStatus возвращается при неизвестном статусе заявки
	ErrInvalidStatus = errors.New("invalid material request status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("materials service: internal error")
)
