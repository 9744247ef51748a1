package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// messageWriter часть kafka.Writer, используемая продюсером
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события бронирований в Kafka
type Producer struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	log     Logger
}

// NewProducer создает продюсер для указанных брокеров и топика.
// Запись асинхронная: Publish ставит сообщение в очередь writer'а и не ждет брокера.
func NewProducer(brokers []string, topic string, timeout time.Duration, log Logger) *Producer {
	return newProducer(newWriter(brokers, topic, timeout, log), topic, timeout, log)
}

func newWriter(brokers []string, topic string, timeout time.Duration, log Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: timeout,
		Async:        true,
		Completion:   completionLogger(topic, log),
	}
}

// completionLogger сообщает об ошибках доставки асинхронно отправленных батчей
func completionLogger(topic string, log Logger) func(messages []kafka.Message, err error) {
	return func(messages []kafka.Message, err error) {
		if err == nil {
			return
		}
		for _, msg := range messages {
			log.Error("Kafka delivery failed, event dropped: topic=%s, booking_id=%s: %v", topic, string(msg.Key), err)
		}
	}
}

func newProducer(writer messageWriter, topic string, timeout time.Duration, log Logger) *Producer {
	return &Producer{
		writer:  writer,
		topic:   topic,
		timeout: timeout,
		log:     log,
	}
}

// Publish отправляет событие. Ключ сообщения - ID бронирования,
// поэтому события одного бронирования попадают в одну партицию по порядку.
func (p *Producer) Publish(ctx context.Context, event BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BookingID),
		Value: payload,
		Time:  event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("%w: topic=%s, type=%s: %v", ErrPublish, p.topic, event.Type, err)
	}

	return nil
}

// PublishBookingEvent публикует событие с graceful degradation:
// ошибка брокера логируется и не влияет на вызывающую операцию
func (p *Producer) PublishBookingEvent(ctx context.Context, event BookingEvent) {
	// Операция уже зафиксирована, отмена запроса не должна терять событие
	ctx = context.WithoutCancel(ctx)

	if err := p.Publish(ctx, event); err != nil {
		p.log.Error("Kafka unavailable, event dropped: type=%s, booking_id=%s: %v", event.Type, event.BookingID, err)
		return
	}

	p.log.Info("Queued event type=%s, booking_id=%s, status=%s", event.Type, event.BookingID, event.Status)
}

// Close закрывает writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда Kafka выключена
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingEvent(context.Context, BookingEvent) {}
