package accounts

import "errors"

var (
	// ErrTeacherNotFound возвращается, когда аккаунт не найден
	ErrTeacherNotFound = errors.New("teacher not found")

	// ErrUsernameTaken возвращается, когда имя пользователя уже занято
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials возвращается при неверном имени пользователя или пароле
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrProtectedAccount возвращается при попытке удалить административный аккаунт
	ErrProtectedAccount = errors.New("administrator accounts cannot be deleted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("accounts service: internal error")
)
