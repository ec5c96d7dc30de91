package get_stats

import (
	"net/http"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	"github.com/m04kA/SISLIM-TurnoService/internal/service/turns/models"
)

type Handler struct {
	turnService         TurnService
	notificationService NotificationService
	logger              Logger
}

func NewHandler(turnService TurnService, notificationService NotificationService, logger Logger) *Handler {
	return &Handler{
		turnService:         turnService,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Handle GET /api/v1/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turnStats, err := h.turnService.GetStats(r.Context())
	if err != nil {
		h.logger.Error("GET /stats - Failed to get turn stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	notificationStats, err := h.notificationService.GetStats(r.Context())
	if err != nil {
		h.logger.Error("GET /stats - Failed to get notification stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stats - Stats fetched successfully: turns=%d, notifications=%d",
		turnStats.Total, notificationStats.Total)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainStats(turnStats, notificationStats))
}
