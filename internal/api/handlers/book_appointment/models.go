package book_appointment

import (
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
	bookAppointment "github.com/Nithin050/qline-service/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	OrgID    int64  `json:"orgId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Date     string `json:"date"`     // "2026-03-14"
	TimeSlot string `json:"timeSlot"` // "09:00 AM – 09:30 AM"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	OrgID     int64  `json:"orgId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest(userID int64) (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		UserID:   userID,
		OrgID:    r.OrgID,
		Name:     r.Name,
		Phone:    r.Phone,
		Date:     date,
		TimeSlot: r.TimeSlot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		OrgID:     resp.OrgID,
		Name:      resp.Name,
		Phone:     resp.Phone,
		Date:      resp.Date.Format(domain.DateFormat),
		TimeSlot:  resp.TimeSlot,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
