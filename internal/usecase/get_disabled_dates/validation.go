package get_disabled_dates

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// validateRange проверяет границы периода и его длину
func validateRange(from, to time.Time, maxRangeDays int) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if to.Before(from) {
		return fmt.Errorf("%w: to %s is before from %s", ErrInvalidInput, domain.DateKey(to), domain.DateKey(from))
	}

	days := int(to.Sub(from).Hours()/24) + 1
	if maxRangeDays > 0 && days > maxRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, maxRangeDays)
	}

	return nil
}
