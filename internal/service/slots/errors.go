package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("availability slot not found")

	// ErrSlotOccupied возвращается при попытке удалить занятый слот
	ErrSlotOccupied = errors.New("availability slot is occupied")

	// ErrAlreadyBlocked возвращается при блокировке уже занятого слота
	ErrAlreadyBlocked = errors.New("availability slot is already blocked")

	// ErrAlreadyFree возвращается при разблокировке свободного слота
	ErrAlreadyFree = errors.New("availability slot is already free")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
