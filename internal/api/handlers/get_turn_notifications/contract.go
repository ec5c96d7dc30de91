package get_turn_notifications

import (
	"context"

	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
)

type NotificationService interface {
	ListByTurn(ctx context.Context, turnID int64) ([]*domain.Notification, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
