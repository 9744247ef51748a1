package list_bookings

import (
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(statusStr, fromStr, toStr, search string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Search: search}

	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим from если указан
	if fromStr != "" {
		from, err := domain.ParseDate(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from format: %w", err)
		}
		req.StartDate = &from
	}

	// Парсим to если указан
	if toStr != "" {
		to, err := domain.ParseDate(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to format: %w", err)
		}
		req.EndDate = &to
	}

	return req, nil
}
