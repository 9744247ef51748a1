package get_slot_catalog

import (
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

type SlotCatalog interface {
	Slots() []domain.TimeSlot
	OffDay() time.Weekday
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
