package register_organization

import (
	"context"

	"github.com/Nithin050/qline-service/internal/service/organizations/models"
)

type OrganizationService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.OrganizationDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
