package get_user_appointments

import (
	"context"

	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetUserAppointments(ctx context.Context, req *models.UserAppointmentsRequest) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
