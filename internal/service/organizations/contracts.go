package organizations

import (
	"context"
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
)

// OrganizationRepository интерфейс репозитория организаций
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
	Search(ctx context.Context, search domain.OrganizationSearch) ([]*domain.Organization, error)
	SetActive(ctx context.Context, id int64, active bool, disabledSince *time.Time) error
	ListTemplates(ctx context.Context, orgID int64) ([]*domain.TimeSlotTemplate, error)
	CreateTemplate(ctx context.Context, orgID int64, slotRange string, position int) (*domain.TimeSlotTemplate, error)
	UpdateTemplate(ctx context.Context, id, orgID int64, slotRange string, isActive bool) error
	DeleteTemplate(ctx context.Context, id, orgID int64) error
	HasHoliday(ctx context.Context, orgID int64, date time.Time) (bool, error)
	ListHolidays(ctx context.Context, orgID int64) ([]*domain.Holiday, error)
	CreateHoliday(ctx context.Context, orgID int64, date time.Time) (*domain.Holiday, error)
	DeleteHoliday(ctx context.Context, id, orgID int64) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
