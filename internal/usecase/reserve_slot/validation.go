package reserve_slot

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// normalizeRequest обрезает пробелы; пустая заметка становится nil
func normalizeRequest(req *Request) Request {
	out := Request{
		Date:         domain.NormalizeDate(req.Date),
		TimeSlot:     strings.TrimSpace(req.TimeSlot),
		CustomerName: strings.TrimSpace(req.CustomerName),
		Address:      strings.TrimSpace(req.Address),
	}
	if req.Note != nil {
		if note := strings.TrimSpace(*req.Note); note != "" {
			out.Note = &note
		}
	}
	return out
}

// validateCustomerDetails проверяет данные клиента, возвращает первую ошибку
func validateCustomerDetails(req *Request) error {
	if req.CustomerName == "" {
		return newValidationError(FieldCustomerName, "name is required")
	}
	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return newValidationError(FieldCustomerName,
			fmt.Sprintf("name must be at most %d characters", domain.MaxCustomerNameLength))
	}

	if req.Address == "" {
		return newValidationError(FieldAddress, "address is required")
	}
	if utf8.RuneCountInString(req.Address) > domain.MaxAddressLength {
		return newValidationError(FieldAddress,
			fmt.Sprintf("address must be at most %d characters", domain.MaxAddressLength))
	}

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxNoteLength {
		return newValidationError(FieldNote,
			fmt.Sprintf("note must be at most %d characters", domain.MaxNoteLength))
	}

	return nil
}

// validateSlot проверяет дату и слот по правилам каталога
func validateSlot(catalog *domain.SlotCatalog, req *Request, now time.Time, maxAdvanceDays int) (domain.TimeSlot, error) {
	if req.Date.IsZero() {
		return domain.TimeSlot{}, newValidationError(FieldDate, "date is required")
	}

	if catalog.IsPast(req.Date, now) {
		return domain.TimeSlot{}, newValidationError(FieldDate, "date is in the past")
	}

	if catalog.IsOffDay(req.Date) {
		return domain.TimeSlot{}, newValidationError(FieldDate,
			fmt.Sprintf("no appointments on %s", catalog.OffDay()))
	}

	// maxAdvanceDays = 0 - без ограничения
	if catalog.IsBeyondHorizon(req.Date, now, maxAdvanceDays) {
		return domain.TimeSlot{}, newValidationError(FieldDate,
			fmt.Sprintf("date is more than %d days ahead", maxAdvanceDays))
	}

	if req.TimeSlot == "" {
		return domain.TimeSlot{}, newValidationError(FieldTimeSlot, "time slot is required")
	}

	slot, ok := catalog.Lookup(req.TimeSlot)
	if !ok {
		return domain.TimeSlot{}, newValidationError(FieldTimeSlot,
			fmt.Sprintf("unknown time slot %q", req.TimeSlot))
	}

	return slot, nil
}
