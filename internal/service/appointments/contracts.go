package appointments

import (
	"context"
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetActiveByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error)
	GetHistoryByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error)
	GetByOrgWithFilter(ctx context.Context, filter domain.OrgAppointmentsFilter) ([]*domain.Appointment, error)
	GetOrgHistory(ctx context.Context, orgID int64, searchName string) ([]*domain.Appointment, error)
	GetDashboardCounts(ctx context.Context, orgID int64, today time.Time) (*domain.DashboardCounts, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.AppointmentStatus) (bool, error)
	Delete(ctx context.Context, id, orgID int64) error
}

// OrganizationRepository интерфейс репозитория организаций
type OrganizationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
