package models

import (
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
)

// UserAppointmentsRequest запрос списка записей пользователя
type UserAppointmentsRequest struct {
	UserID int64
	Scope  string // "active" или "history"
}

// OrgQueueRequest запрос очереди организации (только активные записи)
type OrgQueueRequest struct {
	OrgID       int64
	StaffUserID int64
	Date        *time.Time
	Scope       domain.QueueScope
	SearchName  string
}

// OrgHistoryRequest запрос истории обслуживания организации
type OrgHistoryRequest struct {
	OrgID       int64
	StaffUserID int64
	SearchName  string
}

// Dashboard сводка для панели сотрудника: счетчики плюс очередь на сегодня
type Dashboard struct {
	Counts *domain.DashboardCounts
	Today  []*domain.Appointment
}

// Scope значения для UserAppointmentsRequest
const (
	ScopeActive  = "active"
	ScopeHistory = "history"
)

// AppointmentView представление записи в HTTP ответах
type AppointmentView struct {
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

// DashboardView сводка панели сотрудника в HTTP ответах
type DashboardView struct {
	Today     int                `json:"today"`
	Upcoming  int                `json:"upcoming"`
	Completed int                `json:"completed"`
	Missed    int                `json:"missed"`
	Queue     []*AppointmentView `json:"queue"`
}

// FromDomainAppointment конвертирует доменную модель в представление
func FromDomainAppointment(a *domain.Appointment) *AppointmentView {
	return &AppointmentView{
		ID:        a.ID,
		UserID:    a.UserID,
		OrgID:     a.OrgID,
		Name:      a.Name,
		Phone:     a.Phone,
		Date:      a.Date.Format(domain.DateFormat),
		TimeSlot:  a.TimeSlot,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointments конвертирует список записей
func FromDomainAppointments(list []*domain.Appointment) []*AppointmentView {
	views := make([]*AppointmentView, 0, len(list))
	for _, a := range list {
		views = append(views, FromDomainAppointment(a))
	}
	return views
}

// FromDashboard конвертирует сводку в представление
func FromDashboard(d *Dashboard) *DashboardView {
	return &DashboardView{
		Today:     d.Counts.Today,
		Upcoming:  d.Counts.Upcoming,
		Completed: d.Counts.Completed,
		Missed:    d.Counts.Missed,
		Queue:     FromDomainAppointments(d.Today),
	}
}
