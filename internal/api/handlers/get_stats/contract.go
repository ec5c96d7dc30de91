package get_stats

import (
	"context"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

type TurnService interface {
	GetStats(ctx context.Context) (*domain.TurnStats, error)
}

type NotificationService interface {
	GetStats(ctx context.Context) (*domain.NotificationStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
