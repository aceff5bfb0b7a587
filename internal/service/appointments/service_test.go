package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin050/qline-service/internal/domain"
	apptStorage "github.com/Nithin050/qline-service/internal/infra/storage/appointment"
	orgStorage "github.com/Nithin050/qline-service/internal/infra/storage/organization"
	"github.com/Nithin050/qline-service/internal/service/appointments/models"
)

type fakeApptRepo struct {
	appts map[int64]*domain.Appointment
}

func newFakeApptRepo(appts ...*domain.Appointment) *fakeApptRepo {
	repo := &fakeApptRepo{appts: make(map[int64]*domain.Appointment)}
	for _, a := range appts {
		repo.appts[a.ID] = a
	}
	return repo
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, apptStorage.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeApptRepo) GetActiveByUser(_ context.Context, userID int64) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appts {
		if a.UserID == userID && a.Status == domain.StatusBooked {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeApptRepo) GetHistoryByUser(_ context.Context, userID int64) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appts {
		if a.UserID == userID && a.Status != domain.StatusBooked {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeApptRepo) GetByOrgWithFilter(_ context.Context, filter domain.OrgAppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appts {
		if a.OrgID != filter.OrgID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.Date != nil && !a.Date.Equal(*filter.Date) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeApptRepo) GetOrgHistory(_ context.Context, orgID int64, _ string) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appts {
		if a.OrgID == orgID && a.Status != domain.StatusBooked {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeApptRepo) GetDashboardCounts(_ context.Context, orgID int64, today time.Time) (*domain.DashboardCounts, error) {
	counts := &domain.DashboardCounts{}
	for _, a := range f.appts {
		if a.OrgID != orgID {
			continue
		}
		if a.Date.Equal(today) {
			counts.Today++
		}
		if a.Status == domain.StatusBooked && a.Date.After(today) {
			counts.Upcoming++
		}
		if a.Status == domain.StatusCompleted {
			counts.Completed++
		}
		if a.Status == domain.StatusMissed {
			counts.Missed++
		}
	}
	return counts, nil
}

func (f *fakeApptRepo) UpdateStatusFrom(_ context.Context, id int64, from, to domain.AppointmentStatus) (bool, error) {
	appt, ok := f.appts[id]
	if !ok || appt.Status != from {
		return false, nil
	}
	appt.Status = to
	return true, nil
}

func (f *fakeApptRepo) Delete(_ context.Context, id, orgID int64) error {
	appt, ok := f.appts[id]
	if !ok || appt.OrgID != orgID {
		return apptStorage.ErrAppointmentNotFound
	}
	delete(f.appts, id)
	return nil
}

type fakeOrgRepo struct {
	orgs map[int64]*domain.Organization
}

func (f *fakeOrgRepo) GetByID(_ context.Context, id int64) (*domain.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, orgStorage.ErrOrganizationNotFound
	}
	return org, nil
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

const (
	ownerID = int64(7)
	staffID = int64(100)
	orgID   = int64(1)
)

func testDate() time.Time {
	return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
}

func bookedAppointment(id int64) *domain.Appointment {
	return &domain.Appointment{
		ID:       id,
		UserID:   ownerID,
		OrgID:    orgID,
		Name:     "Asha",
		Phone:    "9876543210",
		Date:     testDate(),
		TimeSlot: "09:00 AM – 09:30 AM",
		Status:   domain.StatusBooked,
	}
}

func newTestService(apptRepo *fakeApptRepo) *Service {
	orgRepo := &fakeOrgRepo{orgs: map[int64]*domain.Organization{
		orgID: {ID: orgID, StaffID: staffID, Name: "City Clinic", IsActive: true},
	}}
	return New(apptRepo, orgRepo, &fixedTime{now: testDate()}, nopLogger{})
}

func TestCancel_Owner(t *testing.T) {
	repo := newFakeApptRepo(bookedAppointment(1))
	svc := newTestService(repo)

	appt, err := svc.Cancel(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, appt.Status)
}

func TestCancel_NotOwner(t *testing.T) {
	repo := newFakeApptRepo(bookedAppointment(1))
	svc := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 1, ownerID+1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Сотрудник тоже не может отменить чужую запись, только обслужить
	// или отметить неявку
	_, err = svc.Cancel(context.Background(), 1, staffID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newFakeApptRepo())

	_, err := svc.Cancel(context.Background(), 99, ownerID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_TerminalStatus(t *testing.T) {
	for _, status := range domain.TerminalStatuses {
		appt := bookedAppointment(1)
		appt.Status = status
		svc := newTestService(newFakeApptRepo(appt))

		_, err := svc.Cancel(context.Background(), 1, ownerID)
		assert.ErrorIs(t, err, ErrInvalidTransition, "from status %s", status)
	}
}

func TestUpdateStatus_Serve(t *testing.T) {
	repo := newFakeApptRepo(bookedAppointment(1))
	svc := newTestService(repo)

	appt, err := svc.UpdateStatus(context.Background(), 1, staffID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, appt.Status)
}

func TestUpdateStatus_Skip(t *testing.T) {
	repo := newFakeApptRepo(bookedAppointment(1))
	svc := newTestService(repo)

	appt, err := svc.UpdateStatus(context.Background(), 1, staffID, domain.StatusMissed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMissed, appt.Status)
}

func TestUpdateStatus_OnlyTerminalTargets(t *testing.T) {
	svc := newTestService(newFakeApptRepo(bookedAppointment(1)))

	_, err := svc.UpdateStatus(context.Background(), 1, staffID, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), 1, staffID, domain.StatusBooked)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), 1, staffID, "Unknown")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_StaffOnly(t *testing.T) {
	svc := newTestService(newFakeApptRepo(bookedAppointment(1)))

	// Даже владелец записи не может отметить себя обслуженным
	_, err := svc.UpdateStatus(context.Background(), 1, ownerID, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_CompletedToMissed(t *testing.T) {
	appt := bookedAppointment(1)
	appt.Status = domain.StatusCompleted
	svc := newTestService(newFakeApptRepo(appt))

	_, err := svc.UpdateStatus(context.Background(), 1, staffID, domain.StatusMissed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDelete_Staff(t *testing.T) {
	repo := newFakeApptRepo(bookedAppointment(1))
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), 1, staffID))

	_, err := svc.GetByID(context.Background(), 1, staffID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDelete_NotStaff(t *testing.T) {
	svc := newTestService(newFakeApptRepo(bookedAppointment(1)))

	err := svc.Delete(context.Background(), 1, ownerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_Access(t *testing.T) {
	svc := newTestService(newFakeApptRepo(bookedAppointment(1)))

	_, err := svc.GetByID(context.Background(), 1, ownerID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, staffID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, int64(999))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserAppointments_Scopes(t *testing.T) {
	booked := bookedAppointment(1)
	cancelled := bookedAppointment(2)
	cancelled.Status = domain.StatusCancelled
	svc := newTestService(newFakeApptRepo(booked, cancelled))

	active, err := svc.GetUserAppointments(context.Background(), &models.UserAppointmentsRequest{
		UserID: ownerID,
		Scope:  models.ScopeActive,
	})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, domain.StatusBooked, active[0].Status)

	history, err := svc.GetUserAppointments(context.Background(), &models.UserAppointmentsRequest{
		UserID: ownerID,
		Scope:  models.ScopeHistory,
	})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.StatusCancelled, history[0].Status)

	_, err = svc.GetUserAppointments(context.Background(), &models.UserAppointmentsRequest{
		UserID: ownerID,
		Scope:  "everything",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOrgQueue_StaffOnly(t *testing.T) {
	svc := newTestService(newFakeApptRepo(bookedAppointment(1)))

	appts, err := svc.GetOrgQueue(context.Background(), &models.OrgQueueRequest{
		OrgID:       orgID,
		StaffUserID: staffID,
	})
	require.NoError(t, err)
	assert.Len(t, appts, 1)

	_, err = svc.GetOrgQueue(context.Background(), &models.OrgQueueRequest{
		OrgID:       orgID,
		StaffUserID: ownerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetDashboard(t *testing.T) {
	today := bookedAppointment(1)
	upcoming := bookedAppointment(2)
	upcoming.Date = testDate().AddDate(0, 0, 1)
	served := bookedAppointment(3)
	served.Status = domain.StatusCompleted
	served.Date = testDate().AddDate(0, 0, -1)
	missed := bookedAppointment(4)
	missed.Status = domain.StatusMissed
	missed.Date = testDate().AddDate(0, 0, -2)

	svc := newTestService(newFakeApptRepo(today, upcoming, served, missed))

	dashboard, err := svc.GetDashboard(context.Background(), orgID, staffID)
	require.NoError(t, err)

	assert.Equal(t, 1, dashboard.Counts.Today)
	assert.Equal(t, 1, dashboard.Counts.Upcoming)
	assert.Equal(t, 1, dashboard.Counts.Completed)
	assert.Equal(t, 1, dashboard.Counts.Missed)

	require.Len(t, dashboard.Today, 1)
	assert.Equal(t, int64(1), dashboard.Today[0].ID)
}

func TestGetDashboard_NotStaff(t *testing.T) {
	svc := newTestService(newFakeApptRepo())

	_, err := svc.GetDashboard(context.Background(), orgID, ownerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
