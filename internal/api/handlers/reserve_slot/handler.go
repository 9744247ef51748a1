package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	reserveSlot "github.com/m04kA/SMC-SlotBooking/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgValidationFailed   = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранный временной слот уже занят"
	msgStoreUnavailable   = "сервис бронирования временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date %q: %v", req.Date, err)
		handlers.RespondValidationError(w, msgInvalidDate, reserveSlot.FieldDate, "date must be YYYY-MM-DD")
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *reserveSlot.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /bookings - Validation failed: field=%s, reason=%s",
				validationErr.Field, validationErr.Reason)
			handlers.RespondValidationError(w, msgValidationFailed, validationErr.Field, validationErr.Reason)

		case errors.Is(err, reserveSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, slot=%q", req.Date, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, reserveSlot.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: date=%s, slot=%q, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to reserve slot: date=%s, slot=%q, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, date=%s, slot=%q",
		result.ID, req.Date, req.TimeSlot)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
