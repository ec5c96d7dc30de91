package request_turn

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("request_turn: client not found")

	// ErrInvalidDate возвращается при некорректной дате турна (например, в прошлом)
	ErrInvalidDate = errors.New("request_turn: invalid turn date")

	// ErrTimeConflict возвращается, когда на эту дату и время уже есть активный турн
	ErrTimeConflict = errors.New("request_turn: time slot is already taken")

	// ErrNoSlotAvailable возвращается, когда нет свободного слота,
	// покрывающего запрошенное окно
	ErrNoSlotAvailable = errors.New("request_turn: no availability slot covers the requested window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_turn: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_turn: internal error")
)
