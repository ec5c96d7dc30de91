package confirm_turn

import (
	"context"

	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns/models"
)

type TurnService interface {
	Confirm(ctx context.Context, turnID int64, req *models.ConfirmTurnRequest) (*models.TurnResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
