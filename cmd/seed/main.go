package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/m04kA/SMC-SlotBooking/internal/bootstrap"
	"github.com/m04kA/SMC-SlotBooking/internal/config"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/slotlock"
	"github.com/m04kA/SMC-SlotBooking/internal/integrations/eventbus"
	reserveSlotUC "github.com/m04kA/SMC-SlotBooking/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

var notes = []string{
	"Call before arrival",
	"Gate code 1234",
	"Second floor, no elevator",
	"Parking in the yard",
	"Dog on the premises",
}

// Заполняет хранилище демонстрационными бронированиями на ближайшие дни.
// Бронирования создаются через тот же use case, что и API.
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	days := flag.Int("days", 14, "number of days ahead to fill")
	fill := flag.Int("fill", 50, "percent of slots to book")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if cfg.Database.Driver == config.DriverMemory {
		log.Fatal("Seeding an in-memory store has no effect, use database.driver=postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	catalog, err := cfg.Catalog.Build()
	if err != nil {
		log.Fatal("Invalid slot catalog: %v", err)
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg.Database, nil, log)
	if err != nil {
		log.Fatal("Failed to open booking store: %v", err)
	}
	defer storage.Close()

	reserve := reserveSlotUC.NewUseCase(
		storage.Bookings,
		catalog,
		slotlock.NoopLocker{},
		storage.TxManager,
		eventbus.NoopPublisher{},
		nil,
		logger.NewNop(),
	)

	gofakeit.Seed(time.Now().UnixNano())

	created, skipped := 0, 0
	today := catalog.Today(time.Now())

	for d := 1; d <= *days; d++ {
		date := today.AddDate(0, 0, d)
		if catalog.IsOffDay(date) {
			continue
		}

		for _, label := range catalog.Labels() {
			if gofakeit.Number(1, 100) > *fill {
				continue
			}

			req := &reserveSlotUC.Request{
				Date:         date,
				TimeSlot:     label,
				CustomerName: gofakeit.Name(),
				Address:      fmt.Sprintf("%s, %s", gofakeit.Street(), gofakeit.City()),
			}
			if gofakeit.Bool() {
				note := gofakeit.RandomString(notes)
				req.Note = &note
			}

			_, err := reserve.Execute(ctx, req)
			switch {
			case err == nil:
				created++
			case errors.Is(err, reserveSlotUC.ErrSlotNotAvailable):
				skipped++
			default:
				log.Fatal("Failed to seed %s %q: %v", domain.DateKey(date), label, err)
			}
		}
	}

	log.Info("Seed complete: created=%d, already booked=%d", created, skipped)
}
