package get_organization

import (
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/internal/service/organizations/models"
)

// OrganizationDetailsResponse организация с расписанием и выходными
type OrganizationDetailsResponse struct {
	ID                  int64              `json:"id"`
	Name                string             `json:"name"`
	ServiceType         string             `json:"serviceType"`
	Location            string             `json:"location"`
	BranchAddress       string             `json:"branchAddress"`
	PhoneNumber         string             `json:"phoneNumber"`
	WorkingHours        string             `json:"workingHours"`
	AppointmentDuration int                `json:"appointmentDuration"`
	IsActive            bool               `json:"isActive"`
	DisabledSince       *string            `json:"disabledSince,omitempty"`
	Templates           []TemplateResponse `json:"templates"`
	Holidays            []string           `json:"holidays"`
}

// TemplateResponse шаблон слотов
type TemplateResponse struct {
	ID       int64  `json:"id"`
	Range    string `json:"range"`
	IsActive bool   `json:"isActive"`
	Position int    `json:"position"`
}

// FromServiceDetails конвертирует модель сервиса в HTTP response
func FromServiceDetails(details *models.OrganizationDetails) *OrganizationDetailsResponse {
	org := details.Organization

	resp := &OrganizationDetailsResponse{
		ID:                  org.ID,
		Name:                org.Name,
		ServiceType:         string(org.ServiceType),
		Location:            org.Location,
		BranchAddress:       org.BranchAddress,
		PhoneNumber:         org.PhoneNumber,
		WorkingHours:        org.WorkingHours,
		AppointmentDuration: org.AppointmentDuration,
		IsActive:            org.IsActive,
		Templates:           make([]TemplateResponse, 0, len(details.Templates)),
		Holidays:            make([]string, 0, len(details.Holidays)),
	}

	if org.DisabledSince != nil {
		s := org.DisabledSince.Format(time.RFC3339)
		resp.DisabledSince = &s
	}

	for _, tpl := range details.Templates {
		resp.Templates = append(resp.Templates, TemplateResponse{
			ID:       tpl.ID,
			Range:    tpl.Range,
			IsActive: tpl.IsActive,
			Position: tpl.Position,
		})
	}

	for _, holiday := range details.Holidays {
		resp.Holidays = append(resp.Holidays, holiday.Date.Format(domain.DateFormat))
	}

	return resp
}
