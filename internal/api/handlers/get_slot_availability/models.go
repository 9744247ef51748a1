package get_slot_availability

import (
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	getSlotAvailability "github.com/m04kA/SMC-SlotBooking/internal/usecase/get_slot_availability"
)

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
	Degraded bool           `json:"degraded"`
	Warning  string         `json:"warning,omitempty"`
}

// SlotResponse состояние слота
type SlotResponse struct {
	TimeSlot  string `json:"timeSlot"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotAvailability.Response) *SlotAvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			TimeSlot:  s.TimeSlot,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Available: s.Available,
		})
	}

	return &SlotAvailabilityResponse{
		Date:     domain.DateKey(resp.Date),
		Slots:    slots,
		Degraded: resp.Degraded,
		Warning:  resp.Warning,
	}
}
