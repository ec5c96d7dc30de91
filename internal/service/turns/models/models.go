package models

import (
	"errors"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid turn status")
)

// Request модели

// ConfirmTurnRequest запрос на подтверждение турна
type ConfirmTurnRequest struct {
	AdminID int64 `json:"adminId"`
}

// CancelTurnRequest запрос на отмену турна
// ActorID - клиент-владелец турна либо администратор
type CancelTurnRequest struct {
	ActorID int64 `json:"actorId"`
}

// ListTurnsRequest запрос на получение турнов с фильтрацией
type ListTurnsRequest struct {
	Date             *time.Time `json:"date,omitempty"`
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListTurnsRequest) ToDomainFilter() (domain.TurnsFilter, error) {
	filter := domain.TurnsFilter{
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainTurnStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// TurnResponse ответ с данными турна
type TurnResponse struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`      // "2025-10-01"
	StartTime       string  `json:"startTime"` // "09:00"
	DurationMinutes int     `json:"durationMinutes"`
	ServiceType     string  `json:"serviceType"`
	Status          string  `json:"status"`
	ClientID        int64   `json:"clientId"`
	SlotID          int64   `json:"slotId"`
	AdminID         *int64  `json:"adminId,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CancelledAt     *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TurnListResponse ответ со списком турнов
type TurnListResponse struct {
	Turns []TurnResponse `json:"turns"`
}

// StatsResponse сводная статистика системы
type StatsResponse struct {
	Turns         TurnStatsResponse         `json:"turns"`
	Notifications NotificationStatsResponse `json:"notifications"`
}

// TurnStatsResponse количество турнов по статусам
type TurnStatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
}

// NotificationStatsResponse количество уведомлений по типам и статусу отправки
type NotificationStatsResponse struct {
	Total         int `json:"total"`
	Sent          int `json:"sent"`
	Pending       int `json:"pending"`
	Confirmations int `json:"confirmations"`
	Alerts        int `json:"alerts"`
	Reminders     int `json:"reminders"`
}

// Методы конвертации

// FromDomainTurn конвертирует domain модель в DTO
func FromDomainTurn(t *domain.Turn) *TurnResponse {
	if t == nil {
		return nil
	}

	resp := &TurnResponse{
		ID:              t.ID,
		Date:            t.Date.Format(domain.DateFormat),
		StartTime:       t.StartTime.String(),
		DurationMinutes: t.DurationMinutes,
		ServiceType:     t.ServiceType,
		Status:          string(t.Status),
		ClientID:        t.ClientID,
		SlotID:          t.SlotID,
		AdminID:         t.AdminID,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}

	if t.CancelledAt != nil {
		cancelledStr := t.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainTurnList конвертирует список domain моделей в DTO
func FromDomainTurnList(turns []*domain.Turn) *TurnListResponse {
	resp := &TurnListResponse{
		Turns: make([]TurnResponse, 0, len(turns)),
	}

	for _, t := range turns {
		if turnResp := FromDomainTurn(t); turnResp != nil {
			resp.Turns = append(resp.Turns, *turnResp)
		}
	}

	return resp
}

// FromDomainStats собирает сводную статистику из domain моделей
func FromDomainStats(ts *domain.TurnStats, ns *domain.NotificationStats) *StatsResponse {
	resp := &StatsResponse{}

	if ts != nil {
		resp.Turns = TurnStatsResponse{
			Total:     ts.Total,
			Pending:   ts.Pending,
			Confirmed: ts.Confirmed,
			Cancelled: ts.Cancelled,
		}
	}
	if ns != nil {
		resp.Notifications = NotificationStatsResponse{
			Total:         ns.Total,
			Sent:          ns.Sent,
			Pending:       ns.Pending,
			Confirmations: ns.Confirmations,
			Alerts:        ns.Alerts,
			Reminders:     ns.Reminders,
		}
	}

	return resp
}

// ToDomainTurnStatus конвертирует строку в domain.TurnStatus с валидацией
func ToDomainTurnStatus(status string) (domain.TurnStatus, error) {
	s := domain.TurnStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
