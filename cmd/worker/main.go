package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/bootstrap"
	"github.com/m04kA/SMC-SlotBooking/internal/config"
	bookingsService "github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBooking/internal/worker/autocomplete"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

// Отдельный процесс автозавершения прошедших бронирований.
// С флагом -once выполняет один проход и завершается (для cron).
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if cfg.Database.Driver == config.DriverMemory {
		log.Fatal("Worker needs a shared store, database.driver=memory is not supported")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := cfg.Catalog.Build()
	if err != nil {
		log.Fatal("Invalid slot catalog: %v", err)
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg.Database, nil, log)
	if err != nil {
		log.Fatal("Failed to open booking store: %v", err)
	}
	defer storage.Close()

	publisher := bootstrap.NewPublisher(cfg.Kafka, log)
	defer publisher.Close()

	bookingSvc := bookingsService.NewService(storage.Bookings, catalog, publisher, nil, log)

	interval := cfg.Sweep.Interval()
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	runner := autocomplete.NewRunner(bookingSvc, interval, 0, log)

	if *once {
		completed := runner.RunOnce(ctx)
		log.Info("Single sweep finished, completed=%d", completed)
		return
	}

	runner.Run(ctx)
}
