package purge_turns

import (
	"errors"
	"net/http"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAge         = "некорректное значение ageInDays"
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

// Handle POST /api/v1/maintenance/purge-turns
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PurgeTurnsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /maintenance/purge-turns - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	removed, err := h.service.PurgeOldCancelled(r.Context(), req.AgeInDays)
	if err != nil {
		switch {
		case errors.Is(err, turns.ErrInvalidInput):
			h.logger.Warn("POST /maintenance/purge-turns - Invalid age: %d", req.AgeInDays)
			handlers.RespondBadRequest(w, msgInvalidAge)

		default:
			h.logger.Error("POST /maintenance/purge-turns - Failed to purge turns: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /maintenance/purge-turns - Purged successfully: removed=%d, age_in_days=%d",
		removed, req.AgeInDays)
	handlers.RespondJSON(w, http.StatusOK, PurgeTurnsResponse{Removed: removed})
}
