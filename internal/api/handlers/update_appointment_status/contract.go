package update_appointment_status

import (
	"context"

	"github.com/Nithin050/qline-service/internal/domain"
)

type AppointmentService interface {
	UpdateStatus(ctx context.Context, id, staffUserID int64, target domain.AppointmentStatus) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
