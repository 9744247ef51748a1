package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.BookingListResponse)
	return resp, args.Error(1)
}

func serve(svc BookingService, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings"+query, nil))
	return w
}

func TestHandle_PassesFilter(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListBookingsRequest) bool {
		return req.Status != nil && *req.Status == "booked" &&
			req.StartDate != nil && req.StartDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) &&
			req.EndDate == nil &&
			req.Search == "lenina"
	})).Return(&models.BookingListResponse{
		Bookings:      []models.BookingResponse{{ID: "x", TimeSlot: "2-4 PM"}},
		AutoCompleted: 2,
	}, nil)

	w := serve(svc, "?status=booked&from=2024-06-01&search=lenina")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"autoCompleted":2`)
	svc.AssertExpectations(t)
}

func TestHandle_InvalidParams(t *testing.T) {
	svc := &mockService{}
	assert.Equal(t, http.StatusBadRequest, serve(svc, "?from=yesterday").Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)

	svc.On("List", mock.Anything, mock.Anything).Return(nil, bookings.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "?status=archived").Code)
}
