package get_disabled_dates

import "time"

// Request модель запроса недоступных дат за период (границы включительно)
type Request struct {
	From time.Time
	To   time.Time
}

// Response модель ответа
type Response struct {
	From          time.Time
	To            time.Time
	DisabledDates []DisabledDate // В порядке дат
	Degraded      bool           // Хранилище недоступно, занятые даты не учтены
	Warning       string
}

// DisabledDate недоступная дата и причина: past, off_day, fully_booked
type DisabledDate struct {
	Date   time.Time
	Reason string
}
