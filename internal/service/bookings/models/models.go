package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// StatusAll значение фильтра статуса "все статусы"
const StatusAll = "all"

// Request модели

// UpdateStatusRequest запрос на изменение статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу; "all" или пусто - все статусы
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Search    string     `json:"search,omitempty"`    // Поиск по имени, адресу и заметке
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Search:    strings.TrimSpace(r.Search),
	}

	if r.Status != nil {
		raw := strings.TrimSpace(*r.Status)
		if raw != "" && !strings.EqualFold(raw, StatusAll) {
			status, err := domain.ParseBookingStatus(raw)
			if err != nil {
				return filter, err
			}
			filter.Statuses = []domain.BookingStatus{status}
		}
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, fmt.Errorf("end date %s is before start date %s",
			domain.DateKey(*filter.EndDate), domain.DateKey(*filter.StartDate))
	}

	return filter, nil
}

// FindBookingRequest поиск бронирования по паре (дата, слот) и статусу
type FindBookingRequest struct {
	Date     time.Time `json:"date"`
	TimeSlot string    `json:"timeSlot"`
	Status   string    `json:"status,omitempty"` // По умолчанию booked
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`     // "2024-06-10"
	TimeSlot     string    `json:"timeSlot"` // "2-4 PM"
	CustomerName string    `json:"customerName"`
	Address      string    `json:"address"`
	Note         *string   `json:"note,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings      []BookingResponse `json:"bookings"`
	AutoCompleted int               `json:"autoCompleted"` // Сколько бронирований завершено перед чтением
}

// CompleteExpiredResponse результат автозавершения
type CompleteExpiredResponse struct {
	Completed int `json:"completed"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID.String(),
		Date:         domain.DateKey(b.Date),
		TimeSlot:     b.TimeSlot,
		CustomerName: b.CustomerName,
		Address:      b.Address,
		Note:         b.Note,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}
