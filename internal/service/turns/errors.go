package turns

import "errors"

var (
	// ErrTurnNotFound возвращается, когда турн не найден
	ErrTurnNotFound = errors.New("turn not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("client not found")

	// ErrAdminNotFound возвращается, когда администратор не найден
	ErrAdminNotFound = errors.New("administrator not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidState возвращается при недопустимом переходе статуса
	// (например, подтверждение отмененного турна)
	ErrInvalidState = errors.New("invalid turn state for this operation")

	// ErrAlreadyCancelled возвращается при повторной отмене турна
	ErrAlreadyCancelled = errors.New("turn is already cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
