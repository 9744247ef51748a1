package update_booking_status

import "github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // completed, canceled, deleted
}

// TransitionErrorResponse ответ на запрещенный переход статуса
type TransitionErrorResponse struct {
	Error string `json:"error"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{Status: r.Status}
}
