package get_org_appointments

import (
	"context"

	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetOrgQueue(ctx context.Context, req *models.OrgQueueRequest) ([]*domain.Appointment, error)
	GetOrgHistory(ctx context.Context, req *models.OrgHistoryRequest) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
