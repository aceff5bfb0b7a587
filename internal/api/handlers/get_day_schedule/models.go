package get_day_schedule

import (
	"github.com/Nithin050/qline-service/internal/domain"
	getDaySchedule "github.com/Nithin050/qline-service/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	OrgID   int64                   `json:"orgId"`
	Date    string                  `json:"date"`
	Holiday bool                    `json:"holiday"`
	Groups  []TemplateGroupResponse `json:"groups"`
}

// TemplateGroupResponse слоты одного шаблона
type TemplateGroupResponse struct {
	Label    string         `json:"label"`
	Disabled bool           `json:"disabled"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse один слот с признаком доступности
type SlotResponse struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	groups := make([]TemplateGroupResponse, 0, len(resp.Groups))
	for _, g := range resp.Groups {
		slots := make([]SlotResponse, 0, len(g.Slots))
		for _, s := range g.Slots {
			slots = append(slots, SlotResponse{
				Label:     s.Label,
				Available: s.Available,
			})
		}
		groups = append(groups, TemplateGroupResponse{
			Label:    g.Label,
			Disabled: g.Disabled,
			Slots:    slots,
		})
	}

	return &DayScheduleResponse{
		OrgID:   resp.OrgID,
		Date:    resp.Date.Format(domain.DateFormat),
		Holiday: resp.Holiday,
		Groups:  groups,
	}
}
