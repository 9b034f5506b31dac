package material

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка на материалы не найдена
	ErrRequestNotFound = errors.New("material.repository: request not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("material.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("material.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("material.repository: failed to scan row")
)
