package get_turns

import (
	"context"

	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns/models"
)

type TurnService interface {
	List(ctx context.Context, req *models.ListTurnsRequest) (*models.TurnListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
