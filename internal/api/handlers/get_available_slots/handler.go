package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/slots"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/slots/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/slots?date=&zone=&serviceType=&freeOnly=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListSlotsRequest{
		FreeOnly: query.Get("freeOnly") == "true",
	}

	if date := query.Get("date"); date != "" {
		req.Date = &date
	}
	if zone := query.Get("zone"); zone != "" {
		req.Zone = &zone
	}
	if serviceType := query.Get("serviceType"); serviceType != "" {
		req.ServiceType = &serviceType
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /slots - Failed to list slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Slots fetched successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
