package get_slot_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
)

type Handler struct {
	catalog SlotCatalog
	logger  Logger
}

func NewHandler(catalog SlotCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Публичный endpoint - каталог не меняется за время жизни процесса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(h.catalog))
}
