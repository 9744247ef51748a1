package get_disabled_dates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_disabled_dates: invalid input data")

	// ErrRangeTooLarge возвращается, когда период длиннее допустимого
	ErrRangeTooLarge = errors.New("get_disabled_dates: date range is too large")
)

// DegradedWarning текст предупреждения, когда хранилище недоступно
const DegradedWarning = "booking store unavailable, fully booked dates are not shown"
