package update_schedule

import (
	"context"

	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/internal/service/organizations/models"
)

type OrganizationService interface {
	AddTemplate(ctx context.Context, orgID, staffUserID int64, slotRange string) (*domain.TimeSlotTemplate, error)
	EditTemplate(ctx context.Context, req *models.EditTemplateRequest) error
	DeleteTemplate(ctx context.Context, orgID, staffUserID, templateID int64) error
	AddHoliday(ctx context.Context, req *models.AddHolidayRequest) (*domain.Holiday, error)
	RemoveHoliday(ctx context.Context, orgID, staffUserID, holidayID int64) error
	SetActive(ctx context.Context, orgID, staffUserID int64, active bool) (*domain.Organization, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
