package get_turn_notifications

import (
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

// NotificationResponse HTTP response model
type NotificationResponse struct {
	ID        int64   `json:"id"`
	TurnID    int64   `json:"turnId"`
	Kind      string  `json:"kind"`
	Message   string  `json:"message"`
	Sent      bool    `json:"sent"`
	SentAt    *string `json:"sentAt,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// NotificationListResponse HTTP response model со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}

// FromDomainNotifications конвертирует список domain моделей в HTTP response
func FromDomainNotifications(items []*domain.Notification) *NotificationListResponse {
	out := make([]NotificationResponse, 0, len(items))

	for _, n := range items {
		resp := NotificationResponse{
			ID:        n.ID,
			TurnID:    n.TurnID,
			Kind:      string(n.Kind),
			Message:   n.Message,
			Sent:      n.Sent,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.SentAt != nil {
			sentAt := n.SentAt.Format(time.RFC3339)
			resp.SentAt = &sentAt
		}
		out = append(out, resp)
	}

	return &NotificationListResponse{
		Notifications: out,
		Total:         len(out),
	}
}
