package get_turns

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/domain"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/turns?date=&status=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListTurnsRequest{
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /turns - Invalid date filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, turns.ErrInvalidInput):
			h.logger.Warn("GET /turns - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /turns - Failed to list turns: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turns - Turns fetched successfully: count=%d", len(result.Turns))
	handlers.RespondJSON(w, http.StatusOK, result)
}
