package book_appointment

import (
	"context"
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
)

// OrganizationRepository интерфейс репозитория организаций
type OrganizationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
	ListTemplates(ctx context.Context, orgID int64) ([]*domain.TimeSlotTemplate, error)
	HasHoliday(ctx context.Context, orgID int64, date time.Time) (bool, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CountBooked(ctx context.Context, userID, orgID int64) (int, error)
	ExistsBooked(ctx context.Context, orgID int64, date time.Time, timeSlot string) (bool, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
