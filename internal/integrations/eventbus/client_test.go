package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:       uuid.MustParse("5f0c3b1e-8f55-4c39-9a3e-0d7f5d1d2a11"),
		Date:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot: "2-4 PM",
		Status:   domain.StatusCanceled,
	}
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	producer := newProducer(writer, "bookings", time.Second, logger.NewNop())
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	event := NewBookingEvent(EventBookingStatusChanged, testBooking(), domain.StatusBooked, at)
	require.NoError(t, producer.Publish(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "5f0c3b1e-8f55-4c39-9a3e-0d7f5d1d2a11", string(msg.Key))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "booking.status_changed", decoded["type"])
	assert.Equal(t, "2024-06-10", decoded["date"])
	assert.Equal(t, "canceled", decoded["status"])
	assert.Equal(t, "booked", decoded["previousStatus"])
}

func TestProducer_Publish_Error(t *testing.T) {
	producer := newProducer(&fakeWriter{err: errors.New("broker down")}, "bookings", time.Second, logger.NewNop())

	err := producer.Publish(context.Background(), NewBookingEvent(EventBookingCreated, testBooking(), "", time.Now()))

	assert.ErrorIs(t, err, ErrPublish)
}

func TestProducer_PublishBookingEvent_SwallowsErrors(t *testing.T) {
	producer := newProducer(&fakeWriter{err: errors.New("broker down")}, "bookings", time.Second, logger.NewNop())

	assert.NotPanics(t, func() {
		producer.PublishBookingEvent(context.Background(), NewBookingEvent(EventBookingCreated, testBooking(), "", time.Now()))
	})
}

func TestNewBookingEvent_CreatedHasNoPreviousStatus(t *testing.T) {
	event := NewBookingEvent(EventBookingCreated, testBooking(), "", time.Now())

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "previousStatus")
}

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Info(string, ...interface{}) {}
func (l *recordingLogger) Warn(string, ...interface{}) {}
func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func TestNewWriter_IsAsync(t *testing.T) {
	writer := newWriter([]string{"localhost:9092"}, "bookings", time.Second, logger.NewNop())
	defer writer.Close()

	assert.True(t, writer.Async)
	assert.NotNil(t, writer.Completion)
	assert.Equal(t, "bookings", writer.Topic)
}

func TestCompletionLogger_LogsFailedDeliveries(t *testing.T) {
	log := &recordingLogger{}
	complete := completionLogger("bookings", log)

	msgs := []kafka.Message{{Key: []byte("a")}, {Key: []byte("b")}}
	complete(msgs, nil)
	assert.Empty(t, log.errors)

	complete(msgs, errors.New("broker down"))
	require.Len(t, log.errors, 2)
	assert.Contains(t, log.errors[0], "booking_id=a")
	assert.Contains(t, log.errors[1], "broker down")
}
