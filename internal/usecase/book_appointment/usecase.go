package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nithin050/qline-service/internal/domain"
	apptRepo "github.com/Nithin050/qline-service/internal/infra/storage/appointment"
	orgRepo "github.com/Nithin050/qline-service/internal/infra/storage/organization"
)

// UseCase use case бронирования слота.
// Проверка предусловий и вставка выполняются одной сериализуемой
// транзакцией; частичный уникальный индекс по (org, date, time_slot,
// status=Booked) страхует от гонки на уровне хранилища. При N конкурентных
// запросах на один слот успешен ровно один, остальные получают ErrSlotTaken.
type UseCase struct {
	apptRepo  AppointmentRepository
	orgRepo   OrganizationRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	orgRepo OrganizationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:  apptRepo,
		orgRepo:   orgRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: user=%d, org=%d, date=%s, slot=%q",
		req.UserID, req.OrgID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных (включая телефон)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем организацию
	org, err := uc.orgRepo.GetByID(ctx, req.OrgID)
	if err != nil {
		if errors.Is(err, orgRepo.ErrOrganizationNotFound) {
			uc.logger.Warn("BookAppointment: organization id=%d not found", req.OrgID)
			return nil, ErrOrganizationNotFound
		}
		uc.logger.Error("BookAppointment: failed to get organization id=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: failed to get organization: %v", ErrInternal, err)
	}

	// 3. Отключённая организация записи не принимает
	if !org.IsActive {
		uc.logger.Warn("BookAppointment: organization id=%d is inactive", req.OrgID)
		return nil, ErrOrganizationInactive
	}

	var result *domain.Appointment

	// 4. Предусловия и вставка - одна атомарная единица
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Выходной блокирует всю дату
		holiday, err := uc.orgRepo.HasHoliday(txCtx, req.OrgID, req.Date)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to check holiday: %v", err)
			return fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
		}
		if holiday {
			uc.logger.Warn("BookAppointment: org=%d has holiday on %s",
				req.OrgID, req.Date.Format(domain.DateFormat))
			return ErrHolidayBlocked
		}

		// 4.2. Лимит активных записей пользователя в этой организации
		count, err := uc.apptRepo.CountBooked(txCtx, req.UserID, req.OrgID)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to count bookings: %v", err)
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}
		if count >= domain.BookingCap {
			uc.logger.Warn("BookAppointment: user=%d reached booking cap at org=%d (%d/%d)",
				req.UserID, req.OrgID, count, domain.BookingCap)
			return ErrBookingCapExceeded
		}

		// 4.3. Слот должен существовать в расписании организации на эту дату
		templates, err := uc.orgRepo.ListTemplates(txCtx, req.OrgID)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to list templates: %v", err)
			return fmt.Errorf("%w: failed to list templates: %v", ErrInternal, err)
		}
		if !slotExistsInSchedule(templates, org.AppointmentDuration, req.TimeSlot) {
			uc.logger.Warn("BookAppointment: slot %q does not exist for org=%d", req.TimeSlot, req.OrgID)
			return ErrInvalidTimeSlot
		}

		// 4.4. Слот не должен быть занят
		taken, err := uc.apptRepo.ExistsBooked(txCtx, req.OrgID, req.Date, req.TimeSlot)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("BookAppointment: slot %q already booked for org=%d on %s",
				req.TimeSlot, req.OrgID, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 4.5. Создаем запись. Уникальный индекс - последний рубеж против
		// гонки: проигравшая транзакция получает здесь нарушение уникальности.
		created, err := uc.apptRepo.Create(txCtx, &domain.Appointment{
			UserID:   req.UserID,
			OrgID:    req.OrgID,
			Name:     req.Name,
			Phone:    req.Phone,
			Date:     req.Date,
			TimeSlot: req.TimeSlot,
			Status:   domain.StatusBooked,
		})
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("BookAppointment: lost race for slot %q org=%d", req.TimeSlot, req.OrgID)
				return ErrSlotTaken
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		UserID:    result.UserID,
		OrgID:     result.OrgID,
		Name:      result.Name,
		Phone:     result.Phone,
		Date:      result.Date,
		TimeSlot:  result.TimeSlot,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
