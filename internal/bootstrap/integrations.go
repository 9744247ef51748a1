package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotBooking/internal/config"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/slotlock"
	"github.com/m04kA/SMC-SlotBooking/internal/integrations/eventbus"
)

// Publisher публикатор событий бронирований с освобождением ресурсов
type Publisher interface {
	PublishBookingEvent(ctx context.Context, event eventbus.BookingEvent)
	Close() error
}

type noopPublisher struct {
	eventbus.NoopPublisher
}

func (noopPublisher) Close() error { return nil }

// NewPublisher создает Kafka продюсер или, если брокеры не заданы, пустой публикатор
func NewPublisher(cfg config.KafkaConfig, log Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		log.Info("Kafka brokers not configured, booking events are not published")
		return noopPublisher{}
	}

	log.Info("Publishing booking events to %v, topic=%s", cfg.Brokers, cfg.Topic)
	return eventbus.NewProducer(cfg.Brokers, cfg.Topic, cfg.TimeoutDuration(), log)
}

// Locker блокировка слотов вместе с клиентом Redis (nil, если Redis выключен)
type Locker struct {
	slotlock.Locker
	Client *redis.Client
}

// Ping проверяет Redis; без Redis всегда успешен
func (l *Locker) Ping(ctx context.Context) error {
	if l.Client == nil {
		return nil
	}
	return l.Client.Ping(ctx).Err()
}

func (l *Locker) Close() error {
	if l.Client == nil {
		return nil
	}
	return l.Client.Close()
}

// NewLocker подключается к Redis, если он включен.
// Недоступный при старте Redis не мешает запуску: бронирование работает
// без блокировки, исключительность гарантирует уникальный индекс.
func NewLocker(ctx context.Context, cfg config.RedisConfig, log Logger) *Locker {
	if !cfg.Enabled {
		return &Locker{Locker: slotlock.NoopLocker{}}
	}

	client, err := slotlock.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		log.Warn("Redis is unavailable, slot locking disabled: %v", err)
		return &Locker{Locker: slotlock.NoopLocker{}}
	}

	log.Info("Slot locking via Redis at %s (ttl=%s)", cfg.Addr, cfg.LockTTLDuration())
	return &Locker{
		Locker: slotlock.NewRedisLocker(client, cfg.LockTTLDuration()),
		Client: client,
	}
}
