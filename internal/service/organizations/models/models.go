package models

import (
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
)

// RegisterRequest запрос на регистрацию организации вместе с
// первоначальным расписанием
type RegisterRequest struct {
	StaffID             int64
	Name                string
	ServiceType         string
	Location            string
	BranchAddress       string
	PhoneNumber         string
	WorkingHours        string
	AppointmentDuration int
	SlotTemplates       []string // диапазоны "09:00 AM - 01:00 PM", по порядку
}

// OrganizationDetails организация вместе с шаблонами и выходными
type OrganizationDetails struct {
	Organization *domain.Organization
	Templates    []*domain.TimeSlotTemplate
	Holidays     []*domain.Holiday
}

// EditTemplateRequest запрос на изменение шаблона слотов
type EditTemplateRequest struct {
	OrgID       int64
	StaffUserID int64
	TemplateID  int64
	Range       string
	IsActive    bool
}

// AddHolidayRequest запрос на добавление выходного
type AddHolidayRequest struct {
	OrgID       int64
	StaffUserID int64
	Date        time.Time
}
