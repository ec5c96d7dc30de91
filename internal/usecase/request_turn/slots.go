package request_turn

import (
	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/pkg/types"
)

// pickSlot выбирает слот на запрошенную дату
// Предпочитает слот, окно которого полностью покрывает интервал
// [startTime, startTime+duration]; иначе берет первый свободный
func pickSlot(
	slots []*domain.AvailabilitySlot,
	startTime types.TimeString,
	durationMinutes int,
) (*domain.AvailabilitySlot, error) {
	turnEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return nil, err
	}

	var first *domain.AvailabilitySlot

	for _, slot := range slots {
		if !slot.IsFree() {
			continue
		}

		if first == nil {
			first = slot
		}

		if !startTime.IsBefore(slot.StartTime) && !turnEnd.IsAfter(slot.EndTime) {
			return slot, nil
		}
	}

	return first, nil
}

// firstFreeSlot возвращает первый свободный слот из списка
// Используется только в режиме fallback, когда на запрошенную дату слотов нет
func firstFreeSlot(slots []*domain.AvailabilitySlot) *domain.AvailabilitySlot {
	for _, slot := range slots {
		if slot.IsFree() {
			return slot
		}
	}
	return nil
}
