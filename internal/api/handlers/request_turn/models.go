package request_turn

import (
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	requestTurn "github.com/m04kA/SISLIM-TurnoService/internal/usecase/request_turn"
	"github.com/m04kA/SISLIM-TurnoService/pkg/types"
)

// RequestTurnRequest HTTP request model
type RequestTurnRequest struct {
	ClientID        int64   `json:"clientId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	ServiceType     string  `json:"serviceType"`
	Notes           *string `json:"notes,omitempty"`
}

// TurnResponse HTTP response model
type TurnResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	SlotID          int64   `json:"slotId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	ServiceType     string  `json:"serviceType"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestTurnRequest) ToUseCaseRequest() (*requestTurn.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &requestTurn.Request{
		ClientID:        r.ClientID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		ServiceType:     r.ServiceType,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestTurn.Response) *TurnResponse {
	return &TurnResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		SlotID:          resp.SlotID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		ServiceType:     resp.ServiceType,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
