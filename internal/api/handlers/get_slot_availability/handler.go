package get_slot_availability

import (
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	getSlotAvailability "github.com/m04kA/SMC-SlotBooking/internal/usecase/get_slot_availability"
)

const (
	msgMissingDate = "отсутствует параметр date"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetSlotAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case (при недоступности хранилища возвращает Degraded, а не ошибку)
	result, err := h.useCase.Execute(r.Context(), &getSlotAvailability.Request{Date: date})
	if err != nil {
		h.logger.Error("GET /availability/slots - Failed to get availability: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.Degraded {
		h.logger.Warn("GET /availability/slots - Degraded response: date=%s", dateStr)
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
