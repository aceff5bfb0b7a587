package domain

import "time"

// ServiceType is the category of a service organization
type ServiceType string

const (
	ServiceClinic      ServiceType = "clinic"
	ServiceSalon       ServiceType = "salon"
	ServiceConsultancy ServiceType = "consultancy"
	ServiceHospital    ServiceType = "hospital"
)

// ValidServiceType returns true if t is one of the known service types
func ValidServiceType(t ServiceType) bool {
	switch t {
	case ServiceClinic, ServiceSalon, ServiceConsultancy, ServiceHospital:
		return true
	default:
		return false
	}
}

// Organization represents a bookable service branch owned by a staff account.
// AppointmentDuration is the fixed slot length in minutes; every slot template
// of the organization is carved with this duration.
type Organization struct {
	ID                  int64
	StaffID             int64
	Name                string
	ServiceType         ServiceType
	Location            string
	BranchAddress       string
	PhoneNumber         string
	WorkingHours        string
	AppointmentDuration int

	IsActive      bool
	DisabledSince *time.Time // set while IsActive is false, nil otherwise

	CreatedAt time.Time
}

// TimeSlotTemplate is a recurring interval of the day ("09:00 AM - 01:00 PM")
// from which discrete slots are generated per date. Inactive templates are
// still listed to users but contribute no bookable slots.
type TimeSlotTemplate struct {
	ID       int64
	OrgID    int64
	Range    string
	IsActive bool
	Position int
}

// Holiday marks a date on which the organization accepts no bookings,
// overriding every template. Duplicate rows for the same date are inert.
type Holiday struct {
	ID    int64
	OrgID int64
	Date  time.Time
}

// OrganizationSearch фильтр каталога организаций для пользователей
type OrganizationSearch struct {
	ServiceType ServiceType // exact match, case-insensitive
	Location    string      // exact match, case-insensitive
	ActiveOnly  bool
}
