package get_slot_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_availability: invalid input data")
)

// DegradedWarning текст предупреждения, когда хранилище недоступно
const DegradedWarning = "booking store unavailable, availability may be inaccurate"
