package export_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	exportCalendar "github.com/m04kA/SMC-SlotBooking/internal/usecase/export_calendar"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange     = "некорректный период"
	msgRangeTooLarge    = "слишком большой период"
	msgStoreUnavailable = "хранилище бронирований недоступно"
)

type Handler struct {
	useCase ExportCalendarUseCase
	logger  Logger
}

func NewHandler(useCase ExportCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/calendar
// Query params: from, to (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := domain.ParseDate(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /admin/calendar - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := domain.ParseDate(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/calendar - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &exportCalendar.Request{From: from, To: to})
	if err != nil {
		switch {
		case errors.Is(err, exportCalendar.ErrRangeTooLarge):
			h.logger.Warn("GET /admin/calendar - Range too large: %v", err)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, exportCalendar.ErrInvalidInput):
			h.logger.Warn("GET /admin/calendar - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, exportCalendar.ErrStoreUnavailable):
			h.logger.Error("GET /admin/calendar - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /admin/calendar - Failed to export calendar: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/calendar - Exported %d days: from=%s, to=%s",
		len(result.Days), domain.DateKey(from), domain.DateKey(to))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
