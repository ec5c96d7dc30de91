package turn

import "errors"

var (
	// ErrTurnNotFound возвращается, когда турн не найден
	ErrTurnNotFound = errors.New("turn.repository: turn not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("turn.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("turn.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("turn.repository: failed to scan row")
)
