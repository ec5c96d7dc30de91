package get_turn

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns"
)

const (
	msgInvalidTurnID = "некорректный ID записи"
	msgNotFound      = "запись не найдена"
)

type Handler struct {
	service TurnService
	logger  Logger
}

func NewHandler(service TurnService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/turns/{turnId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем turnId из URL
	vars := mux.Vars(r)
	turnIDStr := vars["turnId"]

	turnID, err := strconv.ParseInt(turnIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /turns/{id} - Invalid turn ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurnID)
		return
	}

	turn, err := h.service.GetByID(r.Context(), turnID)
	if err != nil {
		switch {
		case errors.Is(err, turns.ErrTurnNotFound):
			h.logger.Warn("GET /turns/{id} - Turn not found: turn_id=%d", turnID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /turns/{id} - Failed to get turn: turn_id=%d, error=%v", turnID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turns/{id} - Turn fetched successfully: turn_id=%d", turnID)
	handlers.RespondJSON(w, http.StatusOK, turn)
}
