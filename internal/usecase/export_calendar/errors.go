package export_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("export_calendar: invalid input data")

	// ErrRangeTooLarge возвращается, когда период длиннее допустимого
	ErrRangeTooLarge = errors.New("export_calendar: date range is too large")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно.
	// Экспорт не выполняется с неполными данными.
	ErrStoreUnavailable = errors.New("export_calendar: booking store unavailable")
)
