package request_turn

import (
	"context"

	requestTurn "github.com/m04kA/SISLIM-TurnoService/internal/usecase/request_turn"
)

type RequestTurnUseCase interface {
	Execute(ctx context.Context, req *requestTurn.Request) (*requestTurn.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
