package get_disabled_dates

import (
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	getDisabledDates "github.com/m04kA/SMC-SlotBooking/internal/usecase/get_disabled_dates"
)

// DisabledDatesResponse HTTP response model
type DisabledDatesResponse struct {
	From          string                 `json:"from"`
	To            string                 `json:"to"`
	DisabledDates []DisabledDateResponse `json:"disabledDates"`
	Degraded      bool                   `json:"degraded"`
	Warning       string                 `json:"warning,omitempty"`
}

// DisabledDateResponse недоступная дата
type DisabledDateResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"` // past, off_day, beyond_horizon, fully_booked
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDisabledDates.Response) *DisabledDatesResponse {
	dates := make([]DisabledDateResponse, 0, len(resp.DisabledDates))
	for _, d := range resp.DisabledDates {
		dates = append(dates, DisabledDateResponse{
			Date:   domain.DateKey(d.Date),
			Reason: d.Reason,
		})
	}

	return &DisabledDatesResponse{
		From:          domain.DateKey(resp.From),
		To:            domain.DateKey(resp.To),
		DisabledDates: dates,
		Degraded:      resp.Degraded,
		Warning:       resp.Warning,
	}
}
