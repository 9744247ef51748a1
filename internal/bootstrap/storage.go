package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SlotBooking/internal/config"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/migrations"
	bookingRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking/memstore"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/metrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/txmanager"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingStore полный набор операций хранилища бронирований
type BookingStore interface {
	Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Find(ctx context.Context, date time.Time, timeSlot string, status domain.BookingStatus) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) error
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	FullyBookedDates(ctx context.Context, from, to time.Time, slots []string, statuses []domain.BookingStatus) ([]time.Time, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Storage хранилище бронирований вместе с менеджером транзакций
type Storage struct {
	Bookings  BookingStore
	TxManager TxManager
	Driver    string

	db     *dbmetrics.DB
	stopCh chan struct{}
}

// OpenStorage открывает хранилище согласно database.driver.
// Для postgres проверяет соединение и, если включено, применяет миграции.
func OpenStorage(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics, log Logger) (*Storage, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("Using in-memory booking store, data is lost on restart")
		return &Storage{
			Bookings:  memstore.NewRepository(),
			TxManager: txmanager.NoopManager{},
			Driver:    cfg.Driver,
		}, nil
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	if cfg.AutoMigrate {
		if err := migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	stopCh := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, m, stopCh)

	return &Storage{
		Bookings:  bookingRepo.NewRepository(wrapped),
		TxManager: txmanager.NewTransactionManager(wrapped),
		Driver:    cfg.Driver,
		db:        wrapped,
		stopCh:    stopCh,
	}, nil
}

func migrate(ctx context.Context, db *sql.DB, log Logger) error {
	migrator, err := migrations.NewMigrator(db)
	if err != nil {
		return err
	}
	if err := migrator.Up(ctx); err != nil {
		return err
	}

	version, err := migrator.Version(ctx)
	if err != nil {
		return err
	}
	log.Info("Database schema is at version %d", version)
	return nil
}

// Ping проверяет доступность хранилища; in-memory хранилище всегда доступно
func (s *Storage) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close останавливает сбор статистики пула и закрывает соединение
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	close(s.stopCh)
	return s.db.Unwrap().Close()
}
