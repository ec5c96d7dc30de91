package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/slots"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректные параметры окна доступности"
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

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid slot: date=%s, start=%s, end=%s, error=%v",
				req.Date, req.StartTime, req.EndTime, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /slots - Failed to create slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: slot_id=%d, date=%s, zone=%s",
		result.ID, result.Date, result.Zone)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
