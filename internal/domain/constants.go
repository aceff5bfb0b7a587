package domain

// Business constants
const (
	// BookingCap maximum number of concurrent Booked appointments one user
	// may hold at one organization
	BookingCap = 2

	MinAppointmentDuration = 1
	MaxAppointmentDuration = 480 // 8 hours

	MaxNameLength     = 100
	MaxLocationLength = 100
	MaxOrgNameLength  = 200
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список финальных статусов записи.
// Используется при выборке истории (все, кроме Booked).
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
	StatusMissed,
}
