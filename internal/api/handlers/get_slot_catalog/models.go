package get_slot_catalog

import "github.com/m04kA/SMC-SlotBooking/internal/domain"

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Slots    []SlotResponse `json:"slots"`
	OffDay   string         `json:"offDay"`   // "Sunday"
	Timezone string         `json:"timezone"` // "Europe/Moscow"
}

// SlotResponse слот каталога
type SlotResponse struct {
	TimeSlot  string `json:"timeSlot"`  // "2-4 PM"
	StartTime string `json:"startTime"` // "14:00"
	EndTime   string `json:"endTime"`   // "16:00"
}

// FromCatalog конвертирует каталог в HTTP response
func FromCatalog(catalog SlotCatalog) *CatalogResponse {
	slots := catalog.Slots()
	resp := &CatalogResponse{
		Slots:    make([]SlotResponse, 0, len(slots)),
		OffDay:   catalog.OffDay().String(),
		Timezone: catalog.Location().String(),
	}

	for _, s := range slots {
		resp.Slots = append(resp.Slots, toSlotResponse(s))
	}

	return resp
}

func toSlotResponse(s domain.TimeSlot) SlotResponse {
	return SlotResponse{
		TimeSlot:  s.Label,
		StartTime: s.StartTime(),
		EndTime:   s.EndTime(),
	}
}
