package get_organization

import (
	"context"

	"github.com/Nithin050/qline-service/internal/service/organizations/models"
)

type OrganizationService interface {
	Get(ctx context.Context, id int64) (*models.OrganizationDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
