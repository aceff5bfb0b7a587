package get_day_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nithin050/qline-service/internal/domain"
	orgRepo "github.com/Nithin050/qline-service/internal/infra/storage/organization"
)

// UseCase use case получения расписания дня: все слоты организации на дату
// с признаком доступности. Чистое чтение, безопасно для параллельных вызовов;
// результат - снимок на момент запроса, при бронировании доступность
// перепроверяется заново.
type UseCase struct {
	orgRepo  OrganizationRepository
	apptRepo AppointmentRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(orgRepo OrganizationRepository, apptRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		orgRepo:  orgRepo,
		apptRepo: apptRepo,
		logger:   logger,
	}
}

// Execute выполняет use case получения расписания дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: org=%d, date=%s", req.OrgID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем организацию; отключённые для пользователей не существуют
	org, err := uc.orgRepo.GetByID(ctx, req.OrgID)
	if err != nil {
		if errors.Is(err, orgRepo.ErrOrganizationNotFound) {
			uc.logger.Warn("GetDaySchedule: organization id=%d not found", req.OrgID)
			return nil, ErrOrganizationNotFound
		}
		uc.logger.Error("GetDaySchedule: failed to get organization id=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: failed to get organization: %v", ErrInternal, err)
	}
	if !org.IsActive {
		uc.logger.Warn("GetDaySchedule: organization id=%d is disabled", req.OrgID)
		return nil, ErrOrganizationNotFound
	}

	// 3. Выходной перекрывает все шаблоны: слоты не вычисляются вовсе
	holiday, err := uc.orgRepo.HasHoliday(ctx, req.OrgID, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to check holiday: %v", err)
		return nil, fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
	}
	if holiday {
		uc.logger.Info("GetDaySchedule: org=%d has holiday on %s", req.OrgID, req.Date.Format(domain.DateFormat))
		return &Response{OrgID: req.OrgID, Date: req.Date, Holiday: true, Groups: []TemplateGroup{}}, nil
	}

	// 4. Получаем шаблоны в порядке объявления
	templates, err := uc.orgRepo.ListTemplates(ctx, req.OrgID)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to list templates: %v", err)
		return nil, fmt.Errorf("%w: failed to list templates: %v", ErrInternal, err)
	}

	// 5. Нарезаем слоты и помечаем занятые
	groups, err := uc.buildGroups(ctx, org, req.Date, templates)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetDaySchedule: org=%d, date=%s, %d groups",
		req.OrgID, req.Date.Format(domain.DateFormat), len(groups))

	return &Response{
		OrgID:   req.OrgID,
		Date:    req.Date,
		Holiday: false,
		Groups:  groups,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrgID <= 0 {
		return fmt.Errorf("%w: orgID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
