package reserve_slot

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на бронирование слота
type Request struct {
	Date         time.Time // Дата (без времени)
	TimeSlot     string    // Метка слота из каталога, например "2-4 PM"
	CustomerName string
	Address      string
	Note         *string // Опционально
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           uuid.UUID
	Date         time.Time
	TimeSlot     string
	CustomerName string
	Address      string
	Note         *string
	Status       string
	CreatedAt    time.Time
}
