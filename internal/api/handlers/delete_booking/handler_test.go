package delete_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking/memstore"
	"github.com/m04kA/SMC-SlotBooking/internal/integrations/eventbus"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

func TestHandle_DeletedIsAbsorbing(t *testing.T) {
	repo := memstore.NewRepository()
	b, err := repo.Insert(context.Background(), &domain.Booking{
		Date:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot: "2-4 PM",
		Status:   domain.StatusBooked,
	})
	require.NoError(t, err)

	svc := bookings.NewService(repo, domain.DefaultSlotCatalog(time.UTC), eventbus.NoopPublisher{}, nil, logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	call := func(id string) int {
		r := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/bookings/"+id, nil)
		r = mux.SetURLVars(r, map[string]string{"bookingId": id})
		w := httptest.NewRecorder()
		h.Handle(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call(b.ID.String()))
	assert.Equal(t, http.StatusConflict, call(b.ID.String()))
	assert.Equal(t, http.StatusBadRequest, call("not-a-uuid"))
}
