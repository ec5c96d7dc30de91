package resend_notifications

import (
	"net/http"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
)

// ResendNotificationsResponse HTTP response model
type ResendNotificationsResponse struct {
	Resent int `json:"resent"`
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

// Handle POST /api/v1/maintenance/resend-notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resent, err := h.service.ResendPending(r.Context())
	if err != nil {
		h.logger.Error("POST /maintenance/resend-notifications - Failed to resend: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /maintenance/resend-notifications - Resent successfully: count=%d", resent)
	handlers.RespondJSON(w, http.StatusOK, ResendNotificationsResponse{Resent: resent})
}
