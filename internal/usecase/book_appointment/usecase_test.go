package book_appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin050/qline-service/internal/domain"
	apptStorage "github.com/Nithin050/qline-service/internal/infra/storage/appointment"
	orgStorage "github.com/Nithin050/qline-service/internal/infra/storage/organization"
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

// fakeApptRepo in-memory хранилище записей. Уникальность Booked-слота
// обеспечивается так же, как частичным индексом в Postgres.
type fakeApptRepo struct {
	mu     sync.Mutex
	nextID int64
	slots  map[string]bool  // org:date:slot -> занят
	counts map[string]int   // user:org -> активные записи
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{
		nextID: 1,
		slots:  make(map[string]bool),
		counts: make(map[string]int),
	}
}

func slotKey(orgID int64, date time.Time, slot string) string {
	return fmt.Sprintf("%d:%s:%s", orgID, date.Format(domain.DateFormat), slot)
}

func countKey(userID, orgID int64) string {
	return fmt.Sprintf("%d:%d", userID, orgID)
}

func (f *fakeApptRepo) CountBooked(_ context.Context, userID, orgID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[countKey(userID, orgID)], nil
}

func (f *fakeApptRepo) ExistsBooked(_ context.Context, orgID int64, date time.Time, timeSlot string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[slotKey(orgID, date, timeSlot)], nil
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := slotKey(appt.OrgID, appt.Date, appt.TimeSlot)
	if f.slots[key] {
		return nil, apptStorage.ErrSlotTaken
	}

	f.slots[key] = true
	f.counts[countKey(appt.UserID, appt.OrgID)]++

	created := *appt
	created.ID = f.nextID
	f.nextID++
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	return &created, nil
}

// fakeTxManager сериализует транзакции мьютексом, имитируя
// serializable-изоляцию для конкурентных тестов
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

func morningTemplates() []*domain.TimeSlotTemplate {
	return []*domain.TimeSlotTemplate{
		{ID: 1, OrgID: 1, Range: "09:00 AM - 10:00 AM", IsActive: true},
	}
}

func testDate() time.Time {
	return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
}

func validRequest() *Request {
	return &Request{
		UserID:   7,
		OrgID:    1,
		Name:     "Asha",
		Phone:    "9876543210",
		Date:     testDate(),
		TimeSlot: "09:00 AM – 09:30 AM",
	}
}

func newTestUseCase(orgs *fakeOrgRepo, appts *fakeApptRepo) *UseCase {
	return NewUseCase(appts, orgs, &fakeTxManager{}, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	orgs := &fakeOrgRepo{org: activeOrg(30), templates: morningTemplates()}
	appts := newFakeApptRepo()
	uc := newTestUseCase(orgs, appts)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Booked", resp.Status)
	assert.Equal(t, "09:00 AM – 09:30 AM", resp.TimeSlot)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeOrgRepo{org: activeOrg(30)}, newFakeApptRepo())

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }, ErrInvalidInput},
		{"zero org", func(r *Request) { r.OrgID = 0 }, ErrInvalidInput},
		{"empty name", func(r *Request) { r.Name = "  " }, ErrInvalidInput},
		{"zero date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"empty slot", func(r *Request) { r.TimeSlot = "" }, ErrInvalidInput},
		{"short phone", func(r *Request) { r.Phone = "12345" }, ErrInvalidPhone},
		{"phone with letters", func(r *Request) { r.Phone = "98765abc10" }, ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_OrganizationNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeOrgRepo{getErr: orgStorage.ErrOrganizationNotFound}, newFakeApptRepo())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestExecute_OrganizationInactive(t *testing.T) {
	org := activeOrg(30)
	org.IsActive = false
	uc := newTestUseCase(&fakeOrgRepo{org: org}, newFakeApptRepo())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOrganizationInactive)
}

func TestExecute_HolidayBlocked(t *testing.T) {
	orgs := &fakeOrgRepo{org: activeOrg(30), templates: morningTemplates(), holiday: true}
	uc := newTestUseCase(orgs, newFakeApptRepo())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrHolidayBlocked)
}

func TestExecute_BookingCapPerOrganization(t *testing.T) {
	orgs := &fakeOrgRepo{org: activeOrg(30), templates: morningTemplates()}
	appts := newFakeApptRepo()
	appts.counts[countKey(7, 1)] = domain.BookingCap

	uc := newTestUseCase(orgs, appts)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingCapExceeded)

	// Лимит действует на пару (пользователь, организация): у другого
	// пользователя и у той же пары в другой организации запись проходит
	other := validRequest()
	other.UserID = 8
	_, err = uc.Execute(context.Background(), other)
	assert.NoError(t, err)
}

func TestExecute_SlotNotInSchedule(t *testing.T) {
	orgs := &fakeOrgRepo{org: activeOrg(30), templates: morningTemplates()}
	uc := newTestUseCase(orgs, newFakeApptRepo())

	req := validRequest()
	req.TimeSlot = "11:00 AM – 11:30 AM"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

// Метка слота с обычным дефисом вместо en-dash не совпадает с
// канонической и отклоняется: ключ уникальности сравнивается байт-в-байт.
func TestExecute_HyphenLabelRejected(t *testing.T) {
	orgs := &fakeOrgRepo{org: activeOrg(30), templates: morningTemplates()}
	uc := newTestUseCase(orgs, newFakeApptRepo())

	req := validRequest()
	req.TimeSlot = "09:00 AM - 09:30 AM"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_InactiveTemplateGivesNoSlots(t *testing.T) {
	orgs := &fakeOrgRepo{
		org: activeOrg(30),
		templates: []*domain.TimeSlotTemplate{
			{ID: 1, OrgID: 1, Range: "09:00 AM - 10:00 AM", IsActive: false},
		},
	}
	uc := newTestUseCase(orgs, newFakeApptRepo())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotTaken(t *testing.T) {
	orgs := &fakeOrgRepo{org: activeOrg(30), templates: morningTemplates()}
	appts := newFakeApptRepo()
	uc := newTestUseCase(orgs, appts)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.UserID = 8
	_, err = uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

// N конкурентных попыток забронировать один слот: побеждает ровно одна,
// остальные получают ErrSlotTaken.
func TestExecute_ConcurrentBookingSingleWinner(t *testing.T) {
	const attempts = 16

	orgs := &fakeOrgRepo{org: activeOrg(30), templates: morningTemplates()}
	appts := newFakeApptRepo()
	uc := newTestUseCase(orgs, appts)

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.UserID = int64(i + 1)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, ErrSlotTaken)
			lost++
		}
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, lost)
}
