package cancel_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		result     *models.BookingResponse
		err        error
		wantStatus int
	}{
		{"cancelled", &models.BookingResponse{Status: "canceled"}, nil, http.StatusOK},
		{"not found", nil, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"already completed", nil, &bookings.TransitionError{From: domain.StatusCompleted, To: domain.StatusCanceled}, http.StatusConflict},
		{"store failure", nil, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			svc := &mockService{}
			svc.On("Cancel", mock.Anything, id).Return(tt.result, tt.err)

			r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+id.String()+"/cancel", nil)
			r = mux.SetURLVars(r, map[string]string{"bookingId": id.String()})
			w := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
