package health

import "context"

// Pinger зависимость, доступность которой проверяется в readiness
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc адаптер функции к Pinger
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type Logger interface {
	Warn(format string, v ...interface{})
}
