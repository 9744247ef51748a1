package complete_expired

import (
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/complete-expired
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	completed, err := h.service.CompleteExpired(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/bookings/complete-expired - Failed after %d completions: error=%v", completed, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/bookings/complete-expired - Completed %d bookings", completed)
	handlers.RespondJSON(w, http.StatusOK, models.CompleteExpiredResponse{Completed: completed})
}
