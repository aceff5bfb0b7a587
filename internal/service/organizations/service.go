package organizations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
	orgRepo "github.com/Nithin050/qline-service/internal/infra/storage/organization"
	"github.com/Nithin050/qline-service/internal/service/organizations/models"
	"github.com/Nithin050/qline-service/pkg/ptr"
	"github.com/Nithin050/qline-service/pkg/timerange"
)

// Service сервис управления организациями: регистрация, каталог,
// расписание (шаблоны слотов и выходные) и включение/отключение приема.
type Service struct {
	orgRepo   OrganizationRepository
	txManager TransactionManager
	timeProv  TimeProvider
	logger    Logger
}

// New создает новый сервис организаций
func New(
	orgRepo OrganizationRepository,
	txManager TransactionManager,
	timeProv TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		orgRepo:   orgRepo,
		txManager: txManager,
		timeProv:  timeProv,
		logger:    logger,
	}
}

// Register регистрирует организацию вместе с первоначальными шаблонами
// слотов. Организация и шаблоны создаются одной транзакцией.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.OrganizationDetails, error) {
	if err := validateRegisterRequest(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	var details *models.OrganizationDetails

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		org, err := s.orgRepo.Create(txCtx, &domain.Organization{
			StaffID:             req.StaffID,
			Name:                req.Name,
			ServiceType:         domain.ServiceType(req.ServiceType),
			Location:            req.Location,
			BranchAddress:       req.BranchAddress,
			PhoneNumber:         req.PhoneNumber,
			WorkingHours:        req.WorkingHours,
			AppointmentDuration: req.AppointmentDuration,
		})
		if err != nil {
			s.logger.Error("Register: failed to create organization: %v", err)
			return fmt.Errorf("%w: failed to create organization: %v", ErrInternal, err)
		}

		templates := make([]*domain.TimeSlotTemplate, 0, len(req.SlotTemplates))
		for i, rng := range req.SlotTemplates {
			tpl, err := s.orgRepo.CreateTemplate(txCtx, org.ID, rng, i+1)
			if err != nil {
				s.logger.Error("Register: failed to create template %q: %v", rng, err)
				return fmt.Errorf("%w: failed to create template: %v", ErrInternal, err)
			}
			templates = append(templates, tpl)
		}

		details = &models.OrganizationDetails{
			Organization: org,
			Templates:    templates,
			Holidays:     []*domain.Holiday{},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Register: organization id=%d registered by staff=%d",
		details.Organization.ID, req.StaffID)

	return details, nil
}

// Get возвращает организацию с шаблонами и выходными. Отключенные
// организации тоже возвращаются: пользователь видит ветку, но без слотов.
func (s *Service) Get(ctx context.Context, id int64) (*models.OrganizationDetails, error) {
	org, err := s.getOrganization(ctx, id)
	if err != nil {
		return nil, err
	}

	templates, err := s.orgRepo.ListTemplates(ctx, id)
	if err != nil {
		s.logger.Error("Get: failed to list templates for org=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to list templates: %v", ErrInternal, err)
	}

	holidays, err := s.orgRepo.ListHolidays(ctx, id)
	if err != nil {
		s.logger.Error("Get: failed to list holidays for org=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to list holidays: %v", ErrInternal, err)
	}

	return &models.OrganizationDetails{
		Organization: org,
		Templates:    templates,
		Holidays:     holidays,
	}, nil
}

// Search возвращает организации каталога по типу услуг и городу
func (s *Service) Search(ctx context.Context, search domain.OrganizationSearch) ([]*domain.Organization, error) {
	if search.ServiceType != "" && !domain.ValidServiceType(search.ServiceType) {
		return nil, ErrInvalidServiceType
	}

	orgs, err := s.orgRepo.Search(ctx, search)
	if err != nil {
		s.logger.Error("Search: failed to search organizations: %v", err)
		return nil, fmt.Errorf("%w: failed to search organizations: %v", ErrInternal, err)
	}

	return orgs, nil
}

// AddTemplate добавляет шаблон слотов в конец расписания организации
func (s *Service) AddTemplate(ctx context.Context, orgID, staffUserID int64, slotRange string) (*domain.TimeSlotTemplate, error) {
	if _, err := timerange.ParseRange(slotRange); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTemplate, slotRange)
	}

	if err := s.requireStaff(ctx, orgID, staffUserID); err != nil {
		return nil, err
	}

	existing, err := s.orgRepo.ListTemplates(ctx, orgID)
	if err != nil {
		s.logger.Error("AddTemplate: failed to list templates for org=%d: %v", orgID, err)
		return nil, fmt.Errorf("%w: failed to list templates: %v", ErrInternal, err)
	}

	tpl, err := s.orgRepo.CreateTemplate(ctx, orgID, slotRange, len(existing)+1)
	if err != nil {
		s.logger.Error("AddTemplate: failed to create template for org=%d: %v", orgID, err)
		return nil, fmt.Errorf("%w: failed to create template: %v", ErrInternal, err)
	}

	s.logger.Info("AddTemplate: template id=%d added to org=%d", tpl.ID, orgID)
	return tpl, nil
}

// EditTemplate меняет диапазон шаблона или его активность. Неактивный
// шаблон остается в расписании, но слотов не дает.
func (s *Service) EditTemplate(ctx context.Context, req *models.EditTemplateRequest) error {
	if _, err := timerange.ParseRange(req.Range); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTemplate, req.Range)
	}

	if err := s.requireStaff(ctx, req.OrgID, req.StaffUserID); err != nil {
		return err
	}

	if err := s.orgRepo.UpdateTemplate(ctx, req.TemplateID, req.OrgID, req.Range, req.IsActive); err != nil {
		if errors.Is(err, orgRepo.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("EditTemplate: failed to update template=%d: %v", req.TemplateID, err)
		return fmt.Errorf("%w: failed to update template: %v", ErrInternal, err)
	}

	s.logger.Info("EditTemplate: template id=%d updated in org=%d", req.TemplateID, req.OrgID)
	return nil
}

// DeleteTemplate удаляет шаблон из расписания организации
func (s *Service) DeleteTemplate(ctx context.Context, orgID, staffUserID, templateID int64) error {
	if err := s.requireStaff(ctx, orgID, staffUserID); err != nil {
		return err
	}

	if err := s.orgRepo.DeleteTemplate(ctx, templateID, orgID); err != nil {
		if errors.Is(err, orgRepo.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("DeleteTemplate: failed to delete template=%d: %v", templateID, err)
		return fmt.Errorf("%w: failed to delete template: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTemplate: template id=%d removed from org=%d", templateID, orgID)
	return nil
}

// AddHoliday отмечает дату выходным: вся дата закрывается для записи.
// Повторное добавление той же даты ничего не меняет.
func (s *Service) AddHoliday(ctx context.Context, req *models.AddHolidayRequest) (*domain.Holiday, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.requireStaff(ctx, req.OrgID, req.StaffUserID); err != nil {
		return nil, err
	}

	exists, err := s.orgRepo.HasHoliday(ctx, req.OrgID, req.Date)
	if err != nil {
		s.logger.Error("AddHoliday: failed to check holiday for org=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: failed to check holiday: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Info("AddHoliday: org=%d already has holiday on %s",
			req.OrgID, req.Date.Format(domain.DateFormat))
		return &domain.Holiday{OrgID: req.OrgID, Date: req.Date}, nil
	}

	holiday, err := s.orgRepo.CreateHoliday(ctx, req.OrgID, req.Date)
	if err != nil {
		s.logger.Error("AddHoliday: failed to create holiday for org=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: failed to create holiday: %v", ErrInternal, err)
	}

	s.logger.Info("AddHoliday: holiday id=%d added to org=%d for %s",
		holiday.ID, req.OrgID, req.Date.Format(domain.DateFormat))
	return holiday, nil
}

// RemoveHoliday снимает отметку выходного, дата снова открыта для записи
func (s *Service) RemoveHoliday(ctx context.Context, orgID, staffUserID, holidayID int64) error {
	if err := s.requireStaff(ctx, orgID, staffUserID); err != nil {
		return err
	}

	if err := s.orgRepo.DeleteHoliday(ctx, holidayID, orgID); err != nil {
		if errors.Is(err, orgRepo.ErrHolidayNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("RemoveHoliday: failed to delete holiday=%d: %v", holidayID, err)
		return fmt.Errorf("%w: failed to delete holiday: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveHoliday: holiday id=%d removed from org=%d", holidayID, orgID)
	return nil
}

// SetActive включает или отключает прием записей. При отключении
// запоминается момент отключения, при включении он сбрасывается.
func (s *Service) SetActive(ctx context.Context, orgID, staffUserID int64, active bool) (*domain.Organization, error) {
	if err := s.requireStaff(ctx, orgID, staffUserID); err != nil {
		return nil, err
	}

	var disabledSince *time.Time
	if !active {
		disabledSince = ptr.Ptr(s.timeProv.Now())
	}

	if err := s.orgRepo.SetActive(ctx, orgID, active, disabledSince); err != nil {
		if errors.Is(err, orgRepo.ErrOrganizationNotFound) {
			return nil, ErrOrganizationNotFound
		}
		s.logger.Error("SetActive: failed to update org=%d: %v", orgID, err)
		return nil, fmt.Errorf("%w: failed to update organization: %v", ErrInternal, err)
	}

	s.logger.Info("SetActive: org=%d active=%t", orgID, active)

	return s.getOrganization(ctx, orgID)
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
