package search_organizations

import (
	"time"

	"github.com/Nithin050/qline-service/internal/domain"
)

// OrganizationResponse HTTP response model
type OrganizationResponse struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	ServiceType         string  `json:"serviceType"`
	Location            string  `json:"location"`
	BranchAddress       string  `json:"branchAddress"`
	PhoneNumber         string  `json:"phoneNumber"`
	WorkingHours        string  `json:"workingHours"`
	AppointmentDuration int     `json:"appointmentDuration"`
	IsActive            bool    `json:"isActive"`
	DisabledSince       *string `json:"disabledSince,omitempty"`
}

// SearchResponse список найденных организаций
type SearchResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(org *domain.Organization) OrganizationResponse {
	resp := OrganizationResponse{
		ID:                  org.ID,
		Name:                org.Name,
		ServiceType:         string(org.ServiceType),
		Location:            org.Location,
		BranchAddress:       org.BranchAddress,
		PhoneNumber:         org.PhoneNumber,
		WorkingHours:        org.WorkingHours,
		AppointmentDuration: org.AppointmentDuration,
		IsActive:            org.IsActive,
	}
	if org.DisabledSince != nil {
		s := org.DisabledSince.Format(time.RFC3339)
		resp.DisabledSince = &s
	}
	return resp
}
