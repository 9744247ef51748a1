package complete_expired

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type stubService struct {
	completed int
	err       error
}

func (s stubService) CompleteExpired(context.Context) (int, error) {
	return s.completed, s.err
}

func TestHandle(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(stubService{completed: 3}, logger.NewNop()).
		Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/bookings/complete-expired", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"completed":3}`, w.Body.String())

	w = httptest.NewRecorder()
	NewHandler(stubService{err: errors.New("boom")}, logger.NewNop()).
		Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/bookings/complete-expired", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
