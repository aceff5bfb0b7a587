package get_appointment

import (
	"context"

	"github.com/Nithin050/qline-service/internal/domain"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id, actingUserID int64) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
