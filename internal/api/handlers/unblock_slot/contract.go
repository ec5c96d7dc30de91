package unblock_slot

import (
	"context"

	"github.com/m04kA/SISLIM-TurnoService/internal/service/slots/models"
)

type SlotService interface {
	Unblock(ctx context.Context, id int64) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
