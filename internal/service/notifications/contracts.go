package notifications

import (
	"context"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetWithFilter(ctx context.Context, filter domain.NotificationsFilter) ([]*domain.Notification, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error)
	GetStats(ctx context.Context) (*domain.NotificationStats, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
