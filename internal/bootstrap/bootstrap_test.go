package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/config"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/slotlock"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking/memstore"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

func TestOpenStorage_Memory(t *testing.T) {
	storage, err := OpenStorage(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, nil, logger.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &memstore.Repository{}, storage.Bookings)
	assert.NoError(t, storage.Ping(context.Background()))
	assert.NoError(t, storage.Close())
}

func TestNewPublisher_WithoutBrokers(t *testing.T) {
	p := NewPublisher(config.KafkaConfig{Topic: "booking-events"}, logger.NewNop())

	assert.IsType(t, noopPublisher{}, p)
	assert.NoError(t, p.Close())
}

func TestNewLocker(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		l := NewLocker(context.Background(), config.RedisConfig{}, logger.NewNop())

		assert.IsType(t, slotlock.NoopLocker{}, l.Locker)
		assert.NoError(t, l.Ping(context.Background()))
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)

		l := NewLocker(context.Background(), config.RedisConfig{Enabled: true, Addr: mr.Addr(), LockTTL: 5}, logger.NewNop())
		defer l.Close()

		assert.IsType(t, &slotlock.RedisLocker{}, l.Locker)
		assert.NoError(t, l.Ping(context.Background()))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		l := NewLocker(context.Background(), config.RedisConfig{Enabled: true, Addr: addr, LockTTL: 5}, logger.NewNop())

		assert.IsType(t, slotlock.NoopLocker{}, l.Locker)
	})
}
