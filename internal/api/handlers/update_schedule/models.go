package update_schedule

// Действия над расписанием организации
const (
	ActionAddTemplate    = "add_template"
	ActionEditTemplate   = "edit_template"
	ActionDeleteTemplate = "delete_template"
	ActionAddHoliday     = "add_holiday"
	ActionRemoveHoliday  = "remove_holiday"
	ActionSetActive      = "set_active"
)

// UpdateScheduleRequest HTTP request model. Поля заполняются в
// зависимости от действия.
type UpdateScheduleRequest struct {
	Action     string `json:"action"`
	Range      string `json:"range,omitempty"`      // add_template, edit_template
	TemplateID int64  `json:"templateId,omitempty"` // edit_template, delete_template
	IsActive   bool   `json:"isActive,omitempty"`   // edit_template
	Date       string `json:"date,omitempty"`       // add_holiday
	HolidayID  int64  `json:"holidayId,omitempty"`  // remove_holiday
	Active     *bool  `json:"active,omitempty"`     // set_active
}

// UpdateScheduleResponse HTTP response model
type UpdateScheduleResponse struct {
	Action     string `json:"action"`
	TemplateID *int64 `json:"templateId,omitempty"`
	HolidayID  *int64 `json:"holidayId,omitempty"`
	IsActive   *bool  `json:"isActive,omitempty"`
}
