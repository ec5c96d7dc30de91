package cancel_turn

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns/models"
)

const (
	msgInvalidTurnID      = "некорректный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись не найдена"
	msgForbidden          = "доступ запрещен"
	msgAlreadyCancelled   = "запись уже отменена"
	msgInvalidState       = "запись нельзя отменить в текущем статусе"
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

// Handle PATCH /api/v1/turns/{turnId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем turnId из URL
	vars := mux.Vars(r)
	turnIDStr := vars["turnId"]

	turnID, err := strconv.ParseInt(turnIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /turns/{id}/cancel - Invalid turn ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurnID)
		return
	}

	// Декодируем body
	var req models.CancelTurnRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /turns/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), turnID, &req)
	if err != nil {
		switch {
		case errors.Is(err, turns.ErrTurnNotFound):
			h.logger.Warn("PATCH /turns/{id}/cancel - Turn not found: turn_id=%d", turnID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, turns.ErrAccessDenied):
			h.logger.Warn("PATCH /turns/{id}/cancel - Access denied: turn_id=%d, actor_id=%d",
				turnID, req.ActorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, turns.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /turns/{id}/cancel - Already cancelled: turn_id=%d", turnID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, turns.ErrInvalidState):
			h.logger.Warn("PATCH /turns/{id}/cancel - Invalid state: turn_id=%d", turnID)
			handlers.RespondBadRequest(w, msgInvalidState)

		default:
			h.logger.Error("PATCH /turns/{id}/cancel - Failed to cancel turn: turn_id=%d, error=%v",
				turnID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turns/{id}/cancel - Turn cancelled successfully: turn_id=%d, actor_id=%d",
		turnID, req.ActorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
