package slotlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

var (
	// ErrLockNotAcquired блокировку пары (дата, слот) держит другой процесс
	ErrLockNotAcquired = errors.New("slotlock: slot lock not acquired")

	// ErrLockUnavailable Redis недоступен, блокировку получить невозможно
	ErrLockUnavailable = errors.New("slotlock: lock backend unavailable")
)

// Locker сериализует критическую секцию по паре (дата, слот)
type Locker interface {
	WithSlotLock(ctx context.Context, date time.Time, timeSlot string, fn func(ctx context.Context) error) error
}

// RedisLocker блокировка через SET NX с токеном и снятием через Lua-скрипт
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker создает блокировщик. ttl ограничивает и время жизни ключа, и время выполнения fn.
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
	}
}

// Key ключ блокировки пары (дата, слот)
func Key(date time.Time, timeSlot string) string {
	return fmt.Sprintf("lock:slot:%s:%s", domain.DateKey(date), timeSlot)
}

func (l *RedisLocker) WithSlotLock(ctx context.Context, date time.Time, timeSlot string, fn func(ctx context.Context) error) error {
	key := Key(date, timeSlot)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: acquire %s: %v", ErrLockUnavailable, key, err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		// снимаем блокировку даже если ctx уже отменен
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = l.release(releaseCtx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *RedisLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("slotlock: release %s: %w", key, err)
	}
	return nil
}

// NoopLocker выполняет fn без блокировки (Redis выключен в конфигурации)
type NoopLocker struct{}

func (NoopLocker) WithSlotLock(ctx context.Context, _ time.Time, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
