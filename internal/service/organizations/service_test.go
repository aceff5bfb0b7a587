package organizations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin050/qline-service/internal/domain"
	orgStorage "github.com/Nithin050/qline-service/internal/infra/storage/organization"
	"github.com/Nithin050/qline-service/internal/service/organizations/models"
)

type fakeOrgRepo struct {
	nextID    int64
	orgs      map[int64]*domain.Organization
	templates map[int64]*domain.TimeSlotTemplate
	holidays  map[int64]*domain.Holiday
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		nextID:    1,
		orgs:      make(map[int64]*domain.Organization),
		templates: make(map[int64]*domain.TimeSlotTemplate),
		holidays:  make(map[int64]*domain.Holiday),
	}
}

func (f *fakeOrgRepo) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeOrgRepo) Create(_ context.Context, org *domain.Organization) (*domain.Organization, error) {
	created := *org
	created.ID = f.id()
	created.IsActive = true
	created.CreatedAt = time.Now()
	f.orgs[created.ID] = &created
	return &created, nil
}

func (f *fakeOrgRepo) GetByID(_ context.Context, id int64) (*domain.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, orgStorage.ErrOrganizationNotFound
	}
	return org, nil
}

func (f *fakeOrgRepo) Search(_ context.Context, search domain.OrganizationSearch) ([]*domain.Organization, error) {
	var result []*domain.Organization
	for _, org := range f.orgs {
		if search.ActiveOnly && !org.IsActive {
			continue
		}
		if search.ServiceType != "" && org.ServiceType != search.ServiceType {
			continue
		}
		result = append(result, org)
	}
	return result, nil
}

func (f *fakeOrgRepo) SetActive(_ context.Context, id int64, active bool, disabledSince *time.Time) error {
	org, ok := f.orgs[id]
	if !ok {
		return orgStorage.ErrOrganizationNotFound
	}
	org.IsActive = active
	org.DisabledSince = disabledSince
	return nil
}

func (f *fakeOrgRepo) ListTemplates(_ context.Context, orgID int64) ([]*domain.TimeSlotTemplate, error) {
	var result []*domain.TimeSlotTemplate
	for _, tpl := range f.templates {
		if tpl.OrgID == orgID {
			result = append(result, tpl)
		}
	}
	return result, nil
}

func (f *fakeOrgRepo) CreateTemplate(_ context.Context, orgID int64, slotRange string, position int) (*domain.TimeSlotTemplate, error) {
	tpl := &domain.TimeSlotTemplate{
		ID:       f.id(),
		OrgID:    orgID,
		Range:    slotRange,
		IsActive: true,
		Position: position,
	}
	f.templates[tpl.ID] = tpl
	return tpl, nil
}

func (f *fakeOrgRepo) UpdateTemplate(_ context.Context, id, orgID int64, slotRange string, isActive bool) error {
	tpl, ok := f.templates[id]
	if !ok || tpl.OrgID != orgID {
		return orgStorage.ErrTemplateNotFound
	}
	tpl.Range = slotRange
	tpl.IsActive = isActive
	return nil
}

func (f *fakeOrgRepo) DeleteTemplate(_ context.Context, id, orgID int64) error {
	tpl, ok := f.templates[id]
	if !ok || tpl.OrgID != orgID {
		return orgStorage.ErrTemplateNotFound
	}
	delete(f.templates, id)
	return nil
}

func (f *fakeOrgRepo) HasHoliday(_ context.Context, orgID int64, date time.Time) (bool, error) {
	for _, h := range f.holidays {
		if h.OrgID == orgID && h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrgRepo) ListHolidays(_ context.Context, orgID int64) ([]*domain.Holiday, error) {
	var result []*domain.Holiday
	for _, h := range f.holidays {
		if h.OrgID == orgID {
			result = append(result, h)
		}
	}
	return result, nil
}

func (f *fakeOrgRepo) CreateHoliday(_ context.Context, orgID int64, date time.Time) (*domain.Holiday, error) {
	h := &domain.Holiday{ID: f.id(), OrgID: orgID, Date: date}
	f.holidays[h.ID] = h
	return h, nil
}

func (f *fakeOrgRepo) DeleteHoliday(_ context.Context, id, orgID int64) error {
	h, ok := f.holidays[id]
	if !ok || h.OrgID != orgID {
		return orgStorage.ErrHolidayNotFound
	}
	delete(f.holidays, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const staffID = int64(100)

func testNow() time.Time {
	return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
}

func newTestService(repo *fakeOrgRepo) *Service {
	return New(repo, fakeTxManager{}, &fixedTime{now: testNow()}, nopLogger{})
}

func validRegisterRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		StaffID:             staffID,
		Name:                "City Clinic",
		ServiceType:         "clinic",
		Location:            "Kochi",
		BranchAddress:       "12 MG Road",
		PhoneNumber:         "9876543210",
		WorkingHours:        "Mon-Sat 9am-8pm",
		AppointmentDuration: 30,
		SlotTemplates:       []string{"09:00 AM - 01:00 PM", "02:00 PM - 08:00 PM"},
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeOrgRepo()
	svc := newTestService(repo)

	details, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.True(t, details.Organization.IsActive)
	require.Len(t, details.Templates, 2)
	assert.Equal(t, 1, details.Templates[0].Position)
	assert.Equal(t, 2, details.Templates[1].Position)
	assert.Empty(t, details.Holidays)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(newFakeOrgRepo())

	tests := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		wantErr error
	}{
		{"zero staff", func(r *models.RegisterRequest) { r.StaffID = 0 }, ErrInvalidInput},
		{"empty name", func(r *models.RegisterRequest) { r.Name = "" }, ErrInvalidInput},
		{"unknown service type", func(r *models.RegisterRequest) { r.ServiceType = "garage" }, ErrInvalidServiceType},
		{"empty location", func(r *models.RegisterRequest) { r.Location = " " }, ErrInvalidInput},
		{"short phone", func(r *models.RegisterRequest) { r.PhoneNumber = "12345" }, ErrInvalidPhone},
		{"zero duration", func(r *models.RegisterRequest) { r.AppointmentDuration = 0 }, ErrInvalidInput},
		{"excessive duration", func(r *models.RegisterRequest) { r.AppointmentDuration = 1000 }, ErrInvalidInput},
		{"no templates", func(r *models.RegisterRequest) { r.SlotTemplates = nil }, ErrInvalidInput},
		{"malformed template", func(r *models.RegisterRequest) { r.SlotTemplates = []string{"9:00-8:00PM"} }, ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddTemplate(t *testing.T) {
	repo := newFakeOrgRepo()
	svc := newTestService(repo)

	details, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	orgID := details.Organization.ID

	tpl, err := svc.AddTemplate(context.Background(), orgID, staffID, "08:00 AM - 09:00 AM")
	require.NoError(t, err)
	assert.Equal(t, 3, tpl.Position)

	_, err = svc.AddTemplate(context.Background(), orgID, staffID, "bad range")
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	_, err = svc.AddTemplate(context.Background(), orgID, staffID+1, "08:00 AM - 09:00 AM")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestEditAndDeleteTemplate(t *testing.T) {
	repo := newFakeOrgRepo()
	svc := newTestService(repo)

	details, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	orgID := details.Organization.ID
	tplID := details.Templates[0].ID

	err = svc.EditTemplate(context.Background(), &models.EditTemplateRequest{
		OrgID:       orgID,
		StaffUserID: staffID,
		TemplateID:  tplID,
		Range:       "10:00 AM - 02:00 PM",
		IsActive:    false,
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00 AM - 02:00 PM", repo.templates[tplID].Range)
	assert.False(t, repo.templates[tplID].IsActive)

	err = svc.EditTemplate(context.Background(), &models.EditTemplateRequest{
		OrgID:       orgID,
		StaffUserID: staffID,
		TemplateID:  999,
		Range:       "10:00 AM - 02:00 PM",
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	require.NoError(t, svc.DeleteTemplate(context.Background(), orgID, staffID, tplID))
	assert.ErrorIs(t, svc.DeleteTemplate(context.Background(), orgID, staffID, tplID), ErrTemplateNotFound)
}

func TestAddHoliday_Idempotent(t *testing.T) {
	repo := newFakeOrgRepo()
	svc := newTestService(repo)

	details, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	orgID := details.Organization.ID

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	_, err = svc.AddHoliday(context.Background(), &models.AddHolidayRequest{
		OrgID: orgID, StaffUserID: staffID, Date: date,
	})
	require.NoError(t, err)
	assert.Len(t, repo.holidays, 1)

	// Повторное добавление той же даты не создает дубликат
	_, err = svc.AddHoliday(context.Background(), &models.AddHolidayRequest{
		OrgID: orgID, StaffUserID: staffID, Date: date,
	})
	require.NoError(t, err)
	assert.Len(t, repo.holidays, 1)
}

func TestSetActive_Toggle(t *testing.T) {
	repo := newFakeOrgRepo()
	svc := newTestService(repo)

	details, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	orgID := details.Organization.ID

	org, err := svc.SetActive(context.Background(), orgID, staffID, false)
	require.NoError(t, err)
	assert.False(t, org.IsActive)
	require.NotNil(t, org.DisabledSince)
	assert.Equal(t, testNow(), *org.DisabledSince)

	org, err = svc.SetActive(context.Background(), orgID, staffID, true)
	require.NoError(t, err)
	assert.True(t, org.IsActive)
	assert.Nil(t, org.DisabledSince)
}

func TestSearch_InvalidServiceType(t *testing.T) {
	svc := newTestService(newFakeOrgRepo())

	_, err := svc.Search(context.Background(), domain.OrganizationSearch{ServiceType: "garage"})
	assert.ErrorIs(t, err, ErrInvalidServiceType)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(newFakeOrgRepo())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}
