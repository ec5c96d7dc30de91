package request_turn

import (
	"errors"
	"net/http"

	"github.com/m04kA/SISLIM-TurnoService/internal/api/handlers"
	requestTurn "github.com/m04kA/SISLIM-TurnoService/internal/usecase/request_turn"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgClientNotFound     = "клиент не найден"
	msgTimeConflict       = "на эту дату и время уже есть запись"
	msgNoSlotAvailable    = "нет свободного окна на выбранную дату"
	msgInvalidTurnDate    = "некорректная дата записи"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase RequestTurnUseCase
	logger  Logger
}

func NewHandler(useCase RequestTurnUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/turns
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RequestTurnRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /turns - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /turns - Failed to parse request: %v", err)
		if req.StartTime != "" && len(req.StartTime) != 5 {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestTurn.ErrTimeConflict):
			h.logger.Warn("POST /turns - Time conflict: client_id=%d, date=%s, time=%s",
				req.ClientID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTimeConflict)

		case errors.Is(err, requestTurn.ErrNoSlotAvailable):
			h.logger.Warn("POST /turns - No slot available: client_id=%d, date=%s", req.ClientID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgNoSlotAvailable)

		case errors.Is(err, requestTurn.ErrClientNotFound):
			h.logger.Warn("POST /turns - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, requestTurn.ErrInvalidDate):
			h.logger.Warn("POST /turns - Invalid turn date: client_id=%d, date=%s", req.ClientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidTurnDate)

		case errors.Is(err, requestTurn.ErrInvalidInput):
			h.logger.Warn("POST /turns - Invalid input: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /turns - Failed to create turn: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /turns - Turn created successfully: turn_id=%d, client_id=%d, slot_id=%d",
		result.ID, req.ClientID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
