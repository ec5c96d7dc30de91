package domain

import (
	"time"

	"github.com/m04kA/SISLIM-TurnoService/pkg/types"
)

// AvailabilitySlot represents a publishable window of bookable time
// in a zone for a service type
type AvailabilitySlot struct {
	ID          int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Zone        string
	ServiceType string
	Available   bool // true = свободен, false = занят/заблокирован

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes returns the slot length derived from its time range
// Диапазон валидируется при создании и редактировании, поэтому результат неотрицателен
func (s *AvailabilitySlot) DurationMinutes() int {
	minutes, err := s.StartTime.MinutesBetween(s.EndTime)
	if err != nil {
		return 0
	}
	return minutes
}

// IsFree returns true if the slot can be booked
func (s *AvailabilitySlot) IsFree() bool {
	return s.Available
}

// MatchesDate returns true if the slot is published for the given date
func (s *AvailabilitySlot) MatchesDate(date time.Time) bool {
	y1, m1, d1 := s.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SlotsFilter фильтр для выборки слотов
type SlotsFilter struct {
	Date        *time.Time // Фильтр по дате (опционально)
	Zone        *string    // Фильтр по зоне (опционально)
	ServiceType *string    // Фильтр по типу услуги (опционально)
	FreeOnly    bool       // Только свободные слоты
}
