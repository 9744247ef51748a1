package get_slot_catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

func TestHandle(t *testing.T) {
	h := NewHandler(domain.DefaultSlotCatalog(time.UTC), logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Sunday", resp.OffDay)
	assert.Equal(t, "UTC", resp.Timezone)
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, SlotResponse{TimeSlot: "8-10 PM", StartTime: "20:00", EndTime: "22:00"}, resp.Slots[3])
}
