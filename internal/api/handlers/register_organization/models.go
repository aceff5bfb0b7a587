package register_organization

import (
	"github.com/Nithin050/qline-service/internal/service/organizations/models"
)

// RegisterOrganizationRequest HTTP request model
type RegisterOrganizationRequest struct {
	Name                string   `json:"name"`
	ServiceType         string   `json:"serviceType"`
	Location            string   `json:"location"`
	BranchAddress       string   `json:"branchAddress"`
	PhoneNumber         string   `json:"phoneNumber"`
	WorkingHours        string   `json:"workingHours"`
	AppointmentDuration int      `json:"appointmentDuration"`
	SlotTemplates       []string `json:"slotTemplates"`
}

// RegisterOrganizationResponse HTTP response model
type RegisterOrganizationResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	IsActive  bool               `json:"isActive"`
	Templates []TemplateResponse `json:"templates"`
}

// TemplateResponse созданный шаблон слотов
type TemplateResponse struct {
	ID       int64  `json:"id"`
	Range    string `json:"range"`
	Position int    `json:"position"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RegisterOrganizationRequest) ToServiceRequest(staffID int64) *models.RegisterRequest {
	return &models.RegisterRequest{
		StaffID:             staffID,
		Name:                r.Name,
		ServiceType:         r.ServiceType,
		Location:            r.Location,
		BranchAddress:       r.BranchAddress,
		PhoneNumber:         r.PhoneNumber,
		WorkingHours:        r.WorkingHours,
		AppointmentDuration: r.AppointmentDuration,
		SlotTemplates:       r.SlotTemplates,
	}
}

// FromServiceDetails конвертирует модель сервиса в HTTP response
func FromServiceDetails(details *models.OrganizationDetails) *RegisterOrganizationResponse {
	resp := &RegisterOrganizationResponse{
		ID:        details.Organization.ID,
		Name:      details.Organization.Name,
		IsActive:  details.Organization.IsActive,
		Templates: make([]TemplateResponse, 0, len(details.Templates)),
	}

	for _, tpl := range details.Templates {
		resp.Templates = append(resp.Templates, TemplateResponse{
			ID:       tpl.ID,
			Range:    tpl.Range,
			Position: tpl.Position,
		})
	}

	return resp
}
