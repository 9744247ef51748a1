package export_calendar

import (
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	exportCalendar "github.com/m04kA/SMC-SlotBooking/internal/usecase/export_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Days []DayResponse `json:"days"`
}

type DayResponse struct {
	Date        string            `json:"date"`
	OffDay      bool              `json:"offDay"`
	FullyBooked bool              `json:"fullyBooked"`
	Bookings    []BookingResponse `json:"bookings"`
}

type BookingResponse struct {
	ID           string  `json:"id"`
	TimeSlot     string  `json:"timeSlot"`
	CustomerName string  `json:"customerName"`
	Address      string  `json:"address"`
	Note         *string `json:"note,omitempty"`
	Status       string  `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *exportCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		bookings := make([]BookingResponse, 0, len(d.Bookings))
		for _, b := range d.Bookings {
			bookings = append(bookings, BookingResponse{
				ID:           b.ID.String(),
				TimeSlot:     b.TimeSlot,
				CustomerName: b.CustomerName,
				Address:      b.Address,
				Note:         b.Note,
				Status:       b.Status,
			})
		}
		days = append(days, DayResponse{
			Date:        domain.DateKey(d.Date),
			OffDay:      d.OffDay,
			FullyBooked: d.FullyBooked,
			Bookings:    bookings,
		})
	}

	return &CalendarResponse{
		From: domain.DateKey(resp.From),
		To:   domain.DateKey(resp.To),
		Days: days,
	}
}
