package get_day_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin050/qline-service/internal/domain"
	orgRepo "github.com/Nithin050/qline-service/internal/infra/storage/organization"
)

type fakeOrgRepo struct {
	org       *domain.Organization
	getErr    error
	templates []*domain.TimeSlotTemplate
	holiday   bool
}

func (f *fakeOrgRepo) GetByID(_ context.Context, _ int64) (*domain.Organization, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.org, nil
}

func (f *fakeOrgRepo) ListTemplates(_ context.Context, _ int64) ([]*domain.TimeSlotTemplate, error) {
	return f.templates, nil
}

func (f *fakeOrgRepo) HasHoliday(_ context.Context, _ int64, _ time.Time) (bool, error) {
	return f.holiday, nil
}

type fakeApptRepo struct {
	booked map[string]bool
}

func (f *fakeApptRepo) ExistsBooked(_ context.Context, _ int64, _ time.Time, timeSlot string) (bool, error) {
	return f.booked[timeSlot], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeOrg(duration int) *domain.Organization {
	return &domain.Organization{
		ID:                  1,
		StaffID:             100,
		Name:                "City Clinic",
		ServiceType:         domain.ServiceClinic,
		AppointmentDuration: duration,
		IsActive:            true,
	}
}

func testDate() time.Time {
	return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeOrgRepo{}, &fakeApptRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{OrgID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{OrgID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_OrganizationNotFound(t *testing.T) {
	uc := NewUseCase(&fakeOrgRepo{getErr: orgRepo.ErrOrganizationNotFound}, &fakeApptRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{OrgID: 42, Date: testDate()})
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestExecute_DisabledOrganizationHidden(t *testing.T) {
	org := activeOrg(30)
	org.IsActive = false

	uc := NewUseCase(&fakeOrgRepo{org: org}, &fakeApptRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate()})
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestExecute_HolidayShortCircuit(t *testing.T) {
	repo := &fakeOrgRepo{
		org:     activeOrg(30),
		holiday: true,
		templates: []*domain.TimeSlotTemplate{
			{ID: 1, OrgID: 1, Range: "09:00 AM - 05:00 PM", IsActive: true},
		},
	}
	uc := NewUseCase(repo, &fakeApptRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.True(t, resp.Holiday)
	assert.Empty(t, resp.Groups)
}

func TestExecute_SlotGeneration(t *testing.T) {
	repo := &fakeOrgRepo{
		org: activeOrg(30),
		templates: []*domain.TimeSlotTemplate{
			{ID: 1, OrgID: 1, Range: "09:00 AM - 10:00 AM", IsActive: true, Position: 1},
		},
	}
	uc := NewUseCase(repo, &fakeApptRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.Groups, 1)
	group := resp.Groups[0]
	assert.Equal(t, "09:00 AM - 10:00 AM", group.Label)
	assert.False(t, group.Disabled)

	require.Len(t, group.Slots, 2)
	assert.Equal(t, "09:00 AM – 09:30 AM", group.Slots[0].Label)
	assert.Equal(t, "09:30 AM – 10:00 AM", group.Slots[1].Label)
	assert.True(t, group.Slots[0].Available)
	assert.True(t, group.Slots[1].Available)
}

func TestExecute_PartialTrailingSlotDropped(t *testing.T) {
	repo := &fakeOrgRepo{
		org: activeOrg(45),
		templates: []*domain.TimeSlotTemplate{
			{ID: 1, OrgID: 1, Range: "09:00 AM - 10:00 AM", IsActive: true},
		},
	}
	uc := NewUseCase(repo, &fakeApptRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.Groups, 1)
	require.Len(t, resp.Groups[0].Slots, 1)
	assert.Equal(t, "09:00 AM – 09:45 AM", resp.Groups[0].Slots[0].Label)
}

func TestExecute_BookedSlotUnavailable(t *testing.T) {
	repo := &fakeOrgRepo{
		org: activeOrg(30),
		templates: []*domain.TimeSlotTemplate{
			{ID: 1, OrgID: 1, Range: "09:00 AM - 10:00 AM", IsActive: true},
		},
	}
	appts := &fakeApptRepo{booked: map[string]bool{
		"09:30 AM – 10:00 AM": true,
	}}
	uc := NewUseCase(repo, appts, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.Groups, 1)
	slots := resp.Groups[0].Slots
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
}

func TestExecute_MalformedTemplateSkipped(t *testing.T) {
	repo := &fakeOrgRepo{
		org: activeOrg(30),
		templates: []*domain.TimeSlotTemplate{
			{ID: 1, OrgID: 1, Range: "9:00-8:00PM", IsActive: true, Position: 1},
			{ID: 2, OrgID: 1, Range: "10:00 AM - 11:00 AM", IsActive: true, Position: 2},
		},
	}
	uc := NewUseCase(repo, &fakeApptRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate()})
	require.NoError(t, err)

	// Сломанный шаблон пропущен, исправный отработал
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "10:00 AM - 11:00 AM", resp.Groups[0].Label)
	assert.Len(t, resp.Groups[0].Slots, 2)
}

func TestExecute_InactiveTemplateDisabled(t *testing.T) {
	repo := &fakeOrgRepo{
		org: activeOrg(30),
		templates: []*domain.TimeSlotTemplate{
			{ID: 1, OrgID: 1, Range: "09:00 AM - 10:00 AM", IsActive: false, Position: 1},
			{ID: 2, OrgID: 1, Range: "10:00 AM - 11:00 AM", IsActive: true, Position: 2},
		},
	}
	uc := NewUseCase(repo, &fakeApptRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.Groups, 2)

	disabled := resp.Groups[0]
	assert.True(t, disabled.Disabled)
	require.Len(t, disabled.Slots, 1)
	assert.Equal(t, "09:00 AM - 10:00 AM", disabled.Slots[0].Label)
	assert.False(t, disabled.Slots[0].Available)

	assert.False(t, resp.Groups[1].Disabled)
}

// Повторный запрос того же дня дает тот же набор меток: генерация
// детерминирована и не зависит от прошлых вызовов.
func TestExecute_Deterministic(t *testing.T) {
	repo := &fakeOrgRepo{
		org: activeOrg(20),
		templates: []*domain.TimeSlotTemplate{
			{ID: 1, OrgID: 1, Range: "09:00 AM - 01:00 PM", IsActive: true},
		},
	}
	uc := NewUseCase(repo, &fakeApptRepo{}, nopLogger{})

	first, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate()})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{OrgID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.Equal(t, first.Groups, second.Groups)
}
