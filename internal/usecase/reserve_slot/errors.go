package reserve_slot

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных (см. ValidationError)
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrSlotNotAvailable возвращается, когда слот уже занят другим бронированием
	ErrSlotNotAvailable = errors.New("reserve_slot: slot is not available")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно.
	// Бронирование в этом случае не создается.
	ErrStoreUnavailable = errors.New("reserve_slot: booking store unavailable")
)

// Поля запроса, на которые ссылается ValidationError
const (
	FieldCustomerName = "customerName"
	FieldAddress      = "address"
	FieldNote         = "note"
	FieldDate         = "date"
	FieldTimeSlot     = "timeSlot"
)

// ValidationError первая ошибка валидации входных данных
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("reserve_slot: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
