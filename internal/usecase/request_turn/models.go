package request_turn

import (
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/pkg/types"
)

// Request модель запроса на создание турна
type Request struct {
	ClientID        int64            // ID клиента
	Date            time.Time        // Дата уборки (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes int              // Длительность в минутах
	ServiceType     string           // Тип услуги (например, "deep cleaning")
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным турном
type Response struct {
	ID              int64            // ID созданного турна
	ClientID        int64            // ID клиента
	SlotID          int64            // ID занятого слота доступности
	Date            time.Time        // Дата уборки
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	ServiceType     string           // Тип услуги
	Status          string           // Статус турна (всегда pending при создании)
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// toResponse конвертирует доменный турн в модель ответа
func toResponse(t *domain.Turn) *Response {
	return &Response{
		ID:              t.ID,
		ClientID:        t.ClientID,
		SlotID:          t.SlotID,
		Date:            t.Date,
		StartTime:       t.StartTime,
		DurationMinutes: t.DurationMinutes,
		ServiceType:     t.ServiceType,
		Status:          string(t.Status),
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
