package actors

import (
	"github.com/m04kA/SISLIM-TurnoService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
