package get_turn_notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/notifications"
)

const (
	msgInvalidTurnID = "некорректный ID записи"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/turns/{turnId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем turnId из URL
	vars := mux.Vars(r)
	turnIDStr := vars["turnId"]

	turnID, err := strconv.ParseInt(turnIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /turns/{id}/notifications - Invalid turn ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurnID)
		return
	}

	items, err := h.service.ListByTurn(r.Context(), turnID)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidInput):
			h.logger.Warn("GET /turns/{id}/notifications - Invalid turn ID: turn_id=%d", turnID)
			handlers.RespondBadRequest(w, msgInvalidTurnID)

		default:
			h.logger.Error("GET /turns/{id}/notifications - Failed to list notifications: turn_id=%d, error=%v",
				turnID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turns/{id}/notifications - Notifications fetched successfully: turn_id=%d, count=%d",
		turnID, len(items))
	handlers.RespondJSON(w, http.StatusOK, FromDomainNotifications(items))
}
