package get_disabled_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	getDisabledDates "github.com/m04kA/SMC-SlotBooking/internal/usecase/get_disabled_dates"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange  = "некорректный период"
	msgRangeTooLarge = "слишком большой период"
)

type Handler struct {
	useCase GetDisabledDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetDisabledDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/dates
// Query params: from, to (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := domain.ParseDate(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /availability/dates - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := domain.ParseDate(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /availability/dates - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDisabledDates.Request{From: from, To: to})
	if err != nil {
		switch {
		case errors.Is(err, getDisabledDates.ErrRangeTooLarge):
			h.logger.Warn("GET /availability/dates - Range too large: %v", err)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getDisabledDates.ErrInvalidInput):
			h.logger.Warn("GET /availability/dates - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /availability/dates - Failed to get disabled dates: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Degraded {
		h.logger.Warn("GET /availability/dates - Degraded response: from=%s, to=%s",
			domain.DateKey(from), domain.DateKey(to))
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
