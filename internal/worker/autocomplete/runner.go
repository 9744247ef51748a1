package autocomplete

import (
	"context"
	"time"
)

// Completer завершает прошедшие бронирования
type Completer interface {
	CompleteExpired(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Runner периодически запускает автозавершение бронирований
type Runner struct {
	completer  Completer
	interval   time.Duration
	runTimeout time.Duration
	logger     Logger
}

// NewRunner создает новый фоновый обработчик
func NewRunner(completer Completer, interval, runTimeout time.Duration, logger Logger) *Runner {
	if runTimeout <= 0 {
		runTimeout = 20 * time.Second
	}
	return &Runner{
		completer:  completer,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

// Run выполняет первый проход сразу, затем по таймеру до отмены ctx
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("AutoComplete: worker started, interval=%s", r.interval)

	r.RunOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("AutoComplete: worker stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce один проход автозавершения с ограничением по времени
func (r *Runner) RunOnce(ctx context.Context) int {
	runCtx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	start := time.Now()
	completed, err := r.completer.CompleteExpired(runCtx)
	if err != nil {
		r.logger.Error("AutoComplete: run failed after %d completions: %v", completed, err)
		return completed
	}

	r.logger.Info("AutoComplete: completed %d bookings in %s", completed, time.Since(start))
	return completed
}
