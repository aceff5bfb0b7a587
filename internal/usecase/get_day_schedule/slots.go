package get_day_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/pkg/timerange"
)

// buildGroups строит группы слотов по шаблонам организации.
//
// Правила:
//   - неактивный шаблон показывается одной отключённой строкой, слоты
//     для него не генерируются;
//   - шаблон с некорректным диапазоном пропускается с warn-логом и не
//     мешает остальным шаблонам;
//   - слот доступен, если на (org, date, label) нет записи в статусе Booked.
func (uc *UseCase) buildGroups(
	ctx context.Context,
	org *domain.Organization,
	date time.Time,
	templates []*domain.TimeSlotTemplate,
) ([]TemplateGroup, error) {
	groups := make([]TemplateGroup, 0, len(templates))

	for _, tpl := range templates {
		if !tpl.IsActive {
			groups = append(groups, TemplateGroup{
				Label:    tpl.Range,
				Disabled: true,
				Slots: []SlotView{
					{Label: tpl.Range, Available: false},
				},
			})
			continue
		}

		rng, err := timerange.ParseRange(tpl.Range)
		if err != nil {
			// Один сломанный шаблон не должен ронять всё расписание
			uc.logger.Warn("GetDaySchedule: skipping malformed template id=%d org=%d: %v",
				tpl.ID, org.ID, err)
			continue
		}

		slots := rng.Slots(org.AppointmentDuration)
		views := make([]SlotView, 0, len(slots))

		for _, slot := range slots {
			label := slot.Label()

			taken, err := uc.apptRepo.ExistsBooked(ctx, org.ID, date, label)
			if err != nil {
				uc.logger.Error("GetDaySchedule: failed to check slot %q: %v", label, err)
				return nil, fmt.Errorf("%w: failed to check slot availability: %v", ErrInternal, err)
			}

			views = append(views, SlotView{Label: label, Available: !taken})
		}

		groups = append(groups, TemplateGroup{
			Label: tpl.Range,
			Slots: views,
		})
	}

	return groups, nil
}
