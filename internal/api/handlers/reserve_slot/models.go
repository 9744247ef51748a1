package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	reserveSlot "github.com/m04kA/SMC-SlotBooking/internal/usecase/reserve_slot"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	Date         string  `json:"date"`     // "2024-06-10"
	TimeSlot     string  `json:"timeSlot"` // "2-4 PM"
	CustomerName string  `json:"customerName"`
	Address      string  `json:"address"`
	Note         *string `json:"note,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	TimeSlot     string  `json:"timeSlot"`
	CustomerName string  `json:"customerName"`
	Address      string  `json:"address"`
	Note         *string `json:"note,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты)
func (r *ReserveSlotRequest) ToUseCaseRequest() (*reserveSlot.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		Date:         date,
		TimeSlot:     r.TimeSlot,
		CustomerName: r.CustomerName,
		Address:      r.Address,
		Note:         r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID.String(),
		Date:         domain.DateKey(resp.Date),
		TimeSlot:     resp.TimeSlot,
		CustomerName: resp.CustomerName,
		Address:      resp.Address,
		Note:         resp.Note,
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
