package organizations

import (
	"fmt"
	"strings"

	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/internal/service/organizations/models"
	"github.com/Nithin050/qline-service/pkg/timerange"
	"github.com/Nithin050/qline-service/pkg/validate"
)

// validateRegisterRequest валидирует запрос на регистрацию организации.
// Шаблоны проверяются заранее: сломанный шаблон на регистрации - ошибка
// оператора, а не повод молча урезать расписание.
func validateRegisterRequest(req *models.RegisterRequest) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if len(req.Name) > domain.MaxOrgNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if !domain.ValidServiceType(domain.ServiceType(req.ServiceType)) {
		return ErrInvalidServiceType
	}

	if strings.TrimSpace(req.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	if len(req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.BranchAddress) == "" {
		return fmt.Errorf("%w: branch address is required", ErrInvalidInput)
	}

	if err := validate.Phone(req.PhoneNumber); err != nil {
		return ErrInvalidPhone
	}

	if req.AppointmentDuration < domain.MinAppointmentDuration ||
		req.AppointmentDuration > domain.MaxAppointmentDuration {
		return fmt.Errorf("%w: appointment duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinAppointmentDuration, domain.MaxAppointmentDuration)
	}

	if len(req.SlotTemplates) == 0 {
		return fmt.Errorf("%w: at least one slot template is required", ErrInvalidInput)
	}

	for _, rng := range req.SlotTemplates {
		if _, err := timerange.ParseRange(rng); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTemplate, rng)
		}
	}

	return nil
}
