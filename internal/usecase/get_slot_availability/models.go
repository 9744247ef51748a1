package get_slot_availability

import (
	"time"
)

// Request модель запроса доступности слотов на дату
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа со слотами в порядке каталога
type Response struct {
	Date     time.Time
	Slots    []Slot
	Degraded bool   // Хранилище недоступно, все слоты показаны свободными
	Warning  string // Заполнено при Degraded
}

// Slot состояние слота
type Slot struct {
	TimeSlot  string // Метка слота, например "2-4 PM"
	StartTime string // "14:00"
	EndTime   string // "16:00"
	Available bool
}
