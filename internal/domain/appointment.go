package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusMissed    AppointmentStatus = "Missed"
)

// Appointment represents a booked queue position at an organization.
// TimeSlot holds the canonical slot label ("09:00 AM – 09:30 AM") produced
// by the slot generator; it doubles as the uniqueness key for Booked rows.
type Appointment struct {
	ID       int64
	UserID   int64
	OrgID    int64
	Name     string
	Phone    string
	Date     time.Time
	TimeSlot string
	Status   AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBooked returns true if the appointment is still active
func (a *Appointment) IsBooked() bool {
	return a.Status == StatusBooked
}

// IsTerminal returns true if the appointment reached a final state
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted || a.Status == StatusMissed
}

// CanTransitionTo reports whether the appointment may move to the given status.
// Booked is the sole initial state; Cancelled, Completed and Missed are terminal.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status != StatusBooked {
		return false
	}
	switch next {
	case StatusCancelled, StatusCompleted, StatusMissed:
		return true
	default:
		return false
	}
}

// ValidStatus returns true if s is one of the known appointment statuses
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusBooked, StatusCancelled, StatusCompleted, StatusMissed:
		return true
	default:
		return false
	}
}

// QueueScope фильтр очереди организации по дате
type QueueScope string

const (
	QueueScopeAll      QueueScope = ""
	QueueScopeToday    QueueScope = "today"
	QueueScopeUpcoming QueueScope = "upcoming"
)

// DashboardCounts счётчики для дашборда организации
type DashboardCounts struct {
	Today     int // записи на сегодня (любой статус)
	Upcoming  int // Booked на будущие даты
	Completed int // обслуженные за всё время
	Missed    int // пропущенные за всё время
}

// OrgAppointmentsFilter фильтр для выборки записей организации
type OrgAppointmentsFilter struct {
	OrgID      int64              // Обязательный параметр
	Date       *time.Time         // Конкретная дата (опционально)
	Status     *AppointmentStatus // Фильтр по статусу (опционально)
	Scope      QueueScope         // today / upcoming относительно Today
	Today      time.Time          // Опорная дата для Scope
	SearchName string             // Поиск по имени клиента (substring, без учёта регистра)
}
