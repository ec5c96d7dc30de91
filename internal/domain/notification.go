package domain

import "time"

// NotificationKind represents the kind of a notification
type NotificationKind string

const (
	KindReminder     NotificationKind = "reminder"
	KindConfirmation NotificationKind = "confirmation"
	KindAlert        NotificationKind = "alert"
)

// Notification represents a message record tied to a turn event
type Notification struct {
	ID      int64
	TurnID  int64
	Kind    NotificationKind
	Message string
	Sent    bool
	SentAt  *time.Time

	CreatedAt time.Time
}

// IsSent returns true if the notification has already been emitted
func (n *Notification) IsSent() bool {
	return n.Sent
}

// NotificationsFilter фильтр для выборки уведомлений
type NotificationsFilter struct {
	TurnID      *int64            // Фильтр по турну (опционально)
	Kind        *NotificationKind // Фильтр по типу (опционально)
	PendingOnly bool              // Только неотправленные
}

// NotificationStats количество уведомлений по типам и статусу отправки
type NotificationStats struct {
	Total         int
	Sent          int
	Pending       int
	Confirmations int
	Alerts        int
	Reminders     int
}
