package purge_notifications

import (
	"errors"
	"net/http"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/notifications"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAge         = "некорректное значение ageInDays"
)

// PurgeNotificationsRequest HTTP request model
type PurgeNotificationsRequest struct {
	AgeInDays int `json:"ageInDays"`
}

// PurgeNotificationsResponse HTTP response model
type PurgeNotificationsResponse struct {
	Removed int64 `json:"removed"`
}

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

// Handle POST /api/v1/maintenance/purge-notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PurgeNotificationsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /maintenance/purge-notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	removed, err := h.service.PurgeOldSent(r.Context(), req.AgeInDays)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidInput):
			h.logger.Warn("POST /maintenance/purge-notifications - Invalid age: %d", req.AgeInDays)
			handlers.RespondBadRequest(w, msgInvalidAge)

		default:
			h.logger.Error("POST /maintenance/purge-notifications - Failed to purge notifications: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /maintenance/purge-notifications - Purged successfully: removed=%d, age_in_days=%d",
		removed, req.AgeInDays)
	handlers.RespondJSON(w, http.StatusOK, PurgeNotificationsResponse{Removed: removed})
}
