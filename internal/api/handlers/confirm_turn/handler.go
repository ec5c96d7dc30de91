package confirm_turn

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
	msgAdminNotFound      = "администратор не найден"
	msgInvalidState       = "запись нельзя подтвердить в текущем статусе"
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

// Handle PATCH /api/v1/turns/{turnId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем turnId из URL
	vars := mux.Vars(r)
	turnIDStr := vars["turnId"]

	turnID, err := strconv.ParseInt(turnIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /turns/{id}/confirm - Invalid turn ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurnID)
		return
	}

	// Декодируем body
	var req models.ConfirmTurnRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /turns/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Confirm(r.Context(), turnID, &req)
	if err != nil {
		switch {
		case errors.Is(err, turns.ErrTurnNotFound):
			h.logger.Warn("PATCH /turns/{id}/confirm - Turn not found: turn_id=%d", turnID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, turns.ErrAdminNotFound):
			h.logger.Warn("PATCH /turns/{id}/confirm - Admin not found: turn_id=%d, admin_id=%d",
				turnID, req.AdminID)
			handlers.RespondNotFound(w, msgAdminNotFound)

		case errors.Is(err, turns.ErrInvalidState):
			h.logger.Warn("PATCH /turns/{id}/confirm - Invalid state: turn_id=%d", turnID)
			handlers.RespondBadRequest(w, msgInvalidState)

		default:
			h.logger.Error("PATCH /turns/{id}/confirm - Failed to confirm turn: turn_id=%d, error=%v",
				turnID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turns/{id}/confirm - Turn confirmed successfully: turn_id=%d, admin_id=%d",
		turnID, req.AdminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
