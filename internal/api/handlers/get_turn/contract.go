package get_turn

import (
	"context"

	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns/models"
)

type TurnService interface {
	GetByID(ctx context.Context, id int64) (*models.TurnResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
