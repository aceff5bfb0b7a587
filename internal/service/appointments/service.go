package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
	apptRepo "github.com/Nithin050/qline-service/internal/infra/storage/appointment"
	orgRepo "github.com/Nithin050/qline-service/internal/infra/storage/organization"
	"github.com/Nithin050/qline-service/internal/service/appointments/models"
	"github.com/Nithin050/qline-service/pkg/ptr"
)

// Service сервис жизненного цикла записей: доступ, отмена, обслуживание,
// пропуск, очередь и сводка для сотрудника. Все переходы статусов идут
// только из Booked; запись в финальном статусе дальше не переходит.
type Service struct {
	apptRepo AppointmentRepository
	orgRepo  OrganizationRepository
	timeProv TimeProvider
	logger   Logger
}

// New создает новый сервис записей
func New(
	apptRepo AppointmentRepository,
	orgRepo OrganizationRepository,
	timeProv TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		apptRepo: apptRepo,
		orgRepo:  orgRepo,
		timeProv: timeProv,
		logger:   logger,
	}
}

// GetByID возвращает запись по ID. Доступ имеют владелец записи и
// сотрудник организации, к которой запись относится.
func (s *Service) GetByID(ctx context.Context, id, actingUserID int64) (*domain.Appointment, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.UserID != actingUserID {
		org, err := s.getOrganization(ctx, appt.OrgID)
		if err != nil {
			return nil, err
		}
		if org.StaffID != actingUserID {
			s.logger.Warn("GetByID: user=%d has no access to appointment=%d", actingUserID, id)
			return nil, ErrAccessDenied
		}
	}

	return appt, nil
}

// GetUserAppointments возвращает записи пользователя: active - только
// Booked, ближайшие первыми; history - все финальные, свежие первыми.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.UserAppointmentsRequest) ([]*domain.Appointment, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	switch req.Scope {
	case models.ScopeActive:
		appts, err := s.apptRepo.GetActiveByUser(ctx, req.UserID)
		if err != nil {
			s.logger.Error("GetUserAppointments: failed to get active for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get active appointments: %v", ErrInternal, err)
		}
		return appts, nil
	case models.ScopeHistory:
		appts, err := s.apptRepo.GetHistoryByUser(ctx, req.UserID)
		if err != nil {
			s.logger.Error("GetUserAppointments: failed to get history for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get appointment history: %v", ErrInternal, err)
		}
		return appts, nil
	default:
		return nil, fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, req.Scope)
	}
}

// Cancel отменяет запись. Отменить может только владелец, и только
// запись в статусе Booked: слот при этом освобождается.
func (s *Service) Cancel(ctx context.Context, id, userID int64) (*domain.Appointment, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.UserID != userID {
		s.logger.Warn("Cancel: user=%d is not the owner of appointment=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return s.transition(ctx, id, domain.StatusCancelled)
}

// UpdateStatus переводит запись в Completed (клиент обслужен) или Missed
// (клиент не явился). Доступно только сотруднику организации.
func (s *Service) UpdateStatus(ctx context.Context, id, staffUserID int64, target domain.AppointmentStatus) (*domain.Appointment, error) {
	if target != domain.StatusCompleted && target != domain.StatusMissed {
		s.logger.Warn("UpdateStatus: target status %q is not allowed", target)
		return nil, ErrInvalidStatus
	}

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireStaff(ctx, appt.OrgID, staffUserID); err != nil {
		return nil, err
	}

	return s.transition(ctx, id, target)
}

// Delete удаляет запись из хранилища. Доступно только сотруднику
// организации; в отличие от отмены, запись исчезает вместе с историей.
func (s *Service) Delete(ctx context.Context, id, staffUserID int64) error {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireStaff(ctx, appt.OrgID, staffUserID); err != nil {
		return err
	}

	if err := s.apptRepo.Delete(ctx, id, appt.OrgID); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: failed to delete appointment=%d: %v", id, err)
		return fmt.Errorf("%w: failed to delete appointment: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment=%d deleted by staff=%d", id, staffUserID)
	return nil
}

// GetOrgQueue возвращает активную очередь организации с фильтрами по
// дате, периоду (today/upcoming) и имени клиента.
func (s *Service) GetOrgQueue(ctx context.Context, req *models.OrgQueueRequest) ([]*domain.Appointment, error) {
	if err := s.requireStaff(ctx, req.OrgID, req.StaffUserID); err != nil {
		return nil, err
	}

	appts, err := s.apptRepo.GetByOrgWithFilter(ctx, domain.OrgAppointmentsFilter{
		OrgID:      req.OrgID,
		Date:       req.Date,
		Status:     ptr.Ptr(domain.StatusBooked),
		Scope:      req.Scope,
		Today:      s.today(),
		SearchName: req.SearchName,
	})
	if err != nil {
		s.logger.Error("GetOrgQueue: failed to get queue for org=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: failed to get organization queue: %v", ErrInternal, err)
	}

	return appts, nil
}

// GetOrgHistory возвращает финальные записи организации, свежие первыми
func (s *Service) GetOrgHistory(ctx context.Context, req *models.OrgHistoryRequest) ([]*domain.Appointment, error) {
	if err := s.requireStaff(ctx, req.OrgID, req.StaffUserID); err != nil {
		return nil, err
	}

	appts, err := s.apptRepo.GetOrgHistory(ctx, req.OrgID, req.SearchName)
	if err != nil {
		s.logger.Error("GetOrgHistory: failed to get history for org=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: failed to get organization history: %v", ErrInternal, err)
	}

	return appts, nil
}

// GetDashboard возвращает сводку для сотрудника: счетчики (сегодня,
// предстоящие, обслужено, пропущено) и очередь на сегодня.
func (s *Service) GetDashboard(ctx context.Context, orgID, staffUserID int64) (*models.Dashboard, error) {
	if err := s.requireStaff(ctx, orgID, staffUserID); err != nil {
		return nil, err
	}

	today := s.today()

	counts, err := s.apptRepo.GetDashboardCounts(ctx, orgID, today)
	if err != nil {
		s.logger.Error("GetDashboard: failed to get counts for org=%d: %v", orgID, err)
		return nil, fmt.Errorf("%w: failed to get dashboard counts: %v", ErrInternal, err)
	}

	todayAppts, err := s.apptRepo.GetByOrgWithFilter(ctx, domain.OrgAppointmentsFilter{
		OrgID:  orgID,
		Date:   &today,
		Status: ptr.Ptr(domain.StatusBooked),
		Today:  today,
	})
	if err != nil {
		s.logger.Error("GetDashboard: failed to get today's queue for org=%d: %v", orgID, err)
		return nil, fmt.Errorf("%w: failed to get today's queue: %v", ErrInternal, err)
	}

	return &models.Dashboard{
		Counts: counts,
		Today:  todayAppts,
	}, nil
}

// transition выполняет условный переход Booked -> target. Сравнение со
// статусом в том же UPDATE исключает гонку двух конкурентных переходов:
// побеждает ровно один, второй получает ErrInvalidTransition.
func (s *Service) transition(ctx context.Context, id int64, target domain.AppointmentStatus) (*domain.Appointment, error) {
	ok, err := s.apptRepo.UpdateStatusFrom(ctx, id, domain.StatusBooked, target)
	if err != nil {
		s.logger.Error("transition: failed to update appointment=%d to %s: %v", id, target, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}
	if !ok {
		s.logger.Warn("transition: appointment=%d is not in Booked status, cannot move to %s", id, target)
		return nil, ErrInvalidTransition
	}

	s.logger.Info("transition: appointment=%d moved to %s", id, target)

	return s.getAppointment(ctx, id)
}

// requireStaff проверяет, что userID - сотрудник организации orgID
func (s *Service) requireStaff(ctx context.Context, orgID, userID int64) error {
	org, err := s.getOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if org.StaffID != userID {
		s.logger.Warn("requireStaff: user=%d is not staff of org=%d", userID, orgID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getAppointment: failed to get appointment=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}
	return appt, nil
}

func (s *Service) getOrganization(ctx context.Context, id int64) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orgRepo.ErrOrganizationNotFound) {
			return nil, ErrOrganizationNotFound
		}
		s.logger.Error("getOrganization: failed to get organization=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get organization: %v", ErrInternal, err)
	}
	return org, nil
}

// today возвращает текущую дату без компонента времени
func (s *Service) today() time.Time {
	now := s.timeProv.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
