package unblock_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/slots"
)

const (
	msgInvalidSlotID = "некорректный ID окна доступности"
	msgNotFound      = "окно доступности не найдено"
	msgAlreadyFree   = "окно доступности уже свободно"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/unblock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем slotId из URL
	vars := mux.Vars(r)
	slotIDStr := vars["slotId"]

	slotID, err := strconv.ParseInt(slotIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/unblock - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.Unblock(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/unblock - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrAlreadyFree):
			h.logger.Warn("PATCH /slots/{id}/unblock - Already free: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyFree)

		default:
			h.logger.Error("PATCH /slots/{id}/unblock - Failed to unblock slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{id}/unblock - Slot unblocked successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
