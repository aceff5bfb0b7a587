package get_org_dashboard

import (
	"context"

	"github.com/Nithin050/qline-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetDashboard(ctx context.Context, orgID, staffUserID int64) (*models.Dashboard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
