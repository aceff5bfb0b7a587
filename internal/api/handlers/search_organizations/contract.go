package search_organizations

import (
	"context"

	"github.com/Nithin050/qline-service/internal/domain"
)

type OrganizationService interface {
	Search(ctx context.Context, search domain.OrganizationSearch) ([]*domain.Organization, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
