package request_turn

import (
	"context"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

// TurnRepository интерфейс репозитория турнов
type TurnRepository interface {
	Create(ctx context.Context, t *domain.Turn) (*domain.Turn, error)
	GetWithFilter(ctx context.Context, filter domain.TurnsFilter) ([]*domain.Turn, error)
}

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	GetWithFilter(ctx context.Context, filter domain.SlotsFilter) ([]*domain.AvailabilitySlot, error)
	SetAvailable(ctx context.Context, id int64, available bool) error
}

// ActorRepository интерфейс репозитория клиентов
type ActorRepository interface {
	GetClientByID(ctx context.Context, id int64) (*domain.Client, error)
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	SendTurnRequested(ctx context.Context, t *domain.Turn) (*domain.Notification, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
