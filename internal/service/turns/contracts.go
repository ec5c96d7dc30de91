package turns

import (
	"context"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

// TurnRepository интерфейс репозитория турнов
type TurnRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Turn, error)
	GetWithFilter(ctx context.Context, filter domain.TurnsFilter) ([]*domain.Turn, error)
	SetConfirmed(ctx context.Context, id int64, adminID int64) error
	SetCancelled(ctx context.Context, id int64) error
	DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error)
	GetStats(ctx context.Context) (*domain.TurnStats, error)
}

// SlotRepository интерфейс репозитория слотов (освобождение слота при отмене)
type SlotRepository interface {
	SetAvailable(ctx context.Context, id int64, available bool) error
}

// ActorRepository интерфейс репозитория клиентов и администраторов
type ActorRepository interface {
	GetClientByID(ctx context.Context, id int64) (*domain.Client, error)
	GetAdminByID(ctx context.Context, id int64) (*domain.Administrator, error)
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	SendTurnConfirmation(ctx context.Context, t *domain.Turn) (*domain.Notification, error)
	SendTurnCancellation(ctx context.Context, t *domain.Turn) (*domain.Notification, error)
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
