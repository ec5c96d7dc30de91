package domain

import (
	"time"

	"github.com/m04kA/SISLIM-TurnoService/pkg/types"
)

// TurnStatus represents the status of a turn
type TurnStatus string

const (
	StatusPending   TurnStatus = "pending"
	StatusConfirmed TurnStatus = "confirmed"
	StatusCancelled TurnStatus = "cancelled"
)

// Turn represents a booked cleaning session in the system
type Turn struct {
	ID              int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	ServiceType     string
	Status          TurnStatus

	ClientID int64
	SlotID   int64
	AdminID  *int64 // Администратор, подтвердивший турн (NULL до подтверждения)

	Notes *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the turn has not been cancelled
func (t *Turn) IsActive() bool {
	return t.Status != StatusCancelled
}

// CanBeConfirmed returns true if the turn can transition to confirmed
// Подтверждать можно только турны в статусе pending
func (t *Turn) CanBeConfirmed() bool {
	return t.Status == StatusPending
}

// CanBeCancelled returns true if the turn can transition to cancelled
func (t *Turn) CanBeCancelled() bool {
	return t.Status == StatusPending || t.Status == StatusConfirmed
}

// IsCancelled returns true if the turn has been cancelled
func (t *Turn) IsCancelled() bool {
	return t.Status == StatusCancelled
}

// TurnsFilter фильтр для выборки турнов
type TurnsFilter struct {
	ClientID         *int64            // Фильтр по клиенту (опционально)
	Date             *time.Time        // Фильтр по дате (опционально)
	StartTime        *types.TimeString // Фильтр по времени начала (опционально)
	Status           *TurnStatus       // Фильтр по статусу (опционально)
	IncludeCancelled bool              // Включать ли отмененные турны
}

// TurnStats количество турнов по статусам
type TurnStats struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
}
