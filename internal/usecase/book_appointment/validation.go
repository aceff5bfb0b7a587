package book_appointment

import (
	"fmt"
	"strings"

	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/pkg/timerange"
	"github.com/Nithin050/qline-service/pkg/validate"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.OrgID <= 0 {
		return fmt.Errorf("%w: orgID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.TimeSlot) == "" {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	if err := validate.Phone(req.Phone); err != nil {
		return ErrInvalidPhone
	}

	return nil
}

// slotExistsInSchedule проверяет, что слот входит в расписание, которое
// генератор выдал бы для этой организации на эту дату. Сравнение идёт по
// канонической строке слота - она же ключ уникальности в хранилище.
// Неактивные и сломанные шаблоны слоты не дают.
func slotExistsInSchedule(templates []*domain.TimeSlotTemplate, duration int, slotLabel string) bool {
	for _, tpl := range templates {
		if !tpl.IsActive {
			continue
		}

		rng, err := timerange.ParseRange(tpl.Range)
		if err != nil {
			continue
		}

		for _, slot := range rng.Slots(duration) {
			if slot.Label() == slotLabel {
				return true
			}
		}
	}

	return false
}
