package export_calendar

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса экспорта календаря за период (границы включительно)
type Request struct {
	From time.Time
	To   time.Time
}

// Response данные для отрисовки календаря
type Response struct {
	From time.Time
	To   time.Time
	Days []Day // Каждая дата периода по порядку
}

// Day одна дата календаря
type Day struct {
	Date        time.Time
	OffDay      bool
	FullyBooked bool      // Все слоты заняты по календарной политике
	Bookings    []Booking // В порядке слотов каталога
}

// Booking бронирование в календаре
type Booking struct {
	ID           uuid.UUID
	TimeSlot     string
	CustomerName string
	Address      string
	Note         *string
	Status       string
}
