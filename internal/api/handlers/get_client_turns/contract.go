package get_client_turns

import (
	"context"

	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns/models"
)

type TurnService interface {
	ListByClient(ctx context.Context, clientID int64, status *string) (*models.TurnListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
