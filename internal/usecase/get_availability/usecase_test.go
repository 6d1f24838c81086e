package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// --- фейки репозиториев ---

type fakeServiceRepo struct {
	service *domain.Service
	masters []*domain.Master
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.service == nil || f.service.ID != id {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeServiceRepo) GetQualifiedMasters(_ context.Context, _ int64) ([]*domain.Master, error) {
	return f.masters, nil
}

type fakeMasterRepo struct {
	templates map[int64]domain.WeeklyTemplate
	windows   map[int64][]domain.Unavailability
}

func (f *fakeMasterRepo) GetWeeklyTemplate(_ context.Context, masterID int64) (domain.WeeklyTemplate, error) {
	return f.templates[masterID], nil
}

func (f *fakeMasterRepo) GetUnavailability(_ context.Context, masterID int64, _, _ time.Time) ([]domain.Unavailability, error) {
	return f.windows[masterID], nil
}

type fakeAppointmentRepo struct {
	appointments map[int64][]*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByMasterAndRange(_ context.Context, masterID int64, _, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments[masterID], nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- тестовые данные ---

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func workdayTemplate(t *testing.T, open, close string) domain.WeeklyTemplate {
	t.Helper()
	tpl := make(domain.WeeklyTemplate)
	for d := time.Weekday(0); d < 7; d++ {
		tpl[d] = []domain.TemplateInterval{{Open: ts(t, open), Close: ts(t, close)}}
	}
	return tpl
}

func testMaster(id int64, name string) *domain.Master {
	return &domain.Master{ID: id, Name: name, Timezone: "UTC", Active: true}
}

func testService() *domain.Service {
	return &domain.Service{ID: 10, Name: "Haircut", DurationMinutes: 60, Price: 1500, Active: true}
}

func newTestUseCase(
	services *fakeServiceRepo,
	masters *fakeMasterRepo,
	appointments *fakeAppointmentRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(services, masters, appointments, domain.SchedulingPolicy{
		SlotGranularityMinutes: 30,
		MinLeadTimeMinutes:     60,
		AdvanceBookingDays:     30,
	}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func slotStarts(slots []domain.AvailableSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime.String())
	}
	return out
}

// --- тесты ---

func TestExecute_MergesSlotsAcrossMasters(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{
		service: testService(),
		masters: []*domain.Master{testMaster(1, "Anna"), testMaster(2, "Boris")},
	}
	masters := &fakeMasterRepo{
		templates: map[int64]domain.WeeklyTemplate{
			1: workdayTemplate(t, "09:00", "11:00"),
			2: workdayTemplate(t, "10:00", "12:00"),
		},
	}
	appointments := &fakeAppointmentRepo{}

	uc := newTestUseCase(services, masters, appointments, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date})
	require.NoError(t, err)

	// Анна: 09:00, 09:30, 10:00; Борис: 10:00, 10:30, 11:00
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, slotStarts(resp.Slots))

	bySlot := make(map[string]domain.AvailableSlot)
	for _, s := range resp.Slots {
		bySlot[s.StartTime.String()] = s
	}
	assert.Equal(t, []int64{1}, bySlot["09:00"].MasterIDs)
	assert.Equal(t, []int64{1, 2}, bySlot["10:00"].MasterIDs)
	assert.Equal(t, []int64{2}, bySlot["11:00"].MasterIDs)

	shared := bySlot["10:00"]
	assert.True(t, shared.HasMaster(1))
	assert.True(t, shared.HasMaster(2))
	exclusive := bySlot["09:00"]
	assert.False(t, exclusive.HasMaster(2))

	require.Len(t, resp.Masters, 2)
	assert.Equal(t, "Anna", resp.Masters[0].Name)
}

func TestExecute_SpecifiedMasterOnly(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{
		service: testService(),
		masters: []*domain.Master{testMaster(1, "Anna"), testMaster(2, "Boris")},
	}
	masters := &fakeMasterRepo{
		templates: map[int64]domain.WeeklyTemplate{
			1: workdayTemplate(t, "09:00", "11:00"),
			2: workdayTemplate(t, "10:00", "12:00"),
		},
	}

	uc := newTestUseCase(services, masters, &fakeAppointmentRepo{}, now)

	masterID := int64(2)
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date, MasterID: &masterID})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, slotStarts(resp.Slots))
	require.Len(t, resp.Masters, 1)
	assert.Equal(t, int64(2), resp.Masters[0].ID)
}

func TestExecute_UnqualifiedMaster(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{
		service: testService(),
		masters: []*domain.Master{testMaster(1, "Anna")},
	}

	uc := newTestUseCase(services, &fakeMasterRepo{}, &fakeAppointmentRepo{}, now)

	masterID := int64(99)
	_, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date, MasterID: &masterID})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeServiceRepo{}, &fakeMasterRepo{}, &fakeAppointmentRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DateValidation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	services := &fakeServiceRepo{service: testService()}

	uc := newTestUseCase(services, &fakeMasterRepo{}, &fakeAppointmentRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 10,
		Date:      time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{
		ServiceID: 10,
		Date:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_OccupyingAppointmentBlocksSlot(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{
		service: testService(),
		masters: []*domain.Master{testMaster(1, "Anna")},
	}
	masters := &fakeMasterRepo{
		templates: map[int64]domain.WeeklyTemplate{1: workdayTemplate(t, "09:00", "12:00")},
	}
	appointments := &fakeAppointmentRepo{
		appointments: map[int64][]*domain.Appointment{
			1: {{
				ID:       100,
				MasterID: 1,
				StartAt:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
				EndAt:    time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
				Status:   domain.StatusConfirmed,
			}},
		},
	}

	uc := newTestUseCase(services, masters, appointments, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date})
	require.NoError(t, err)

	// 10:00 занят целиком, 09:30 не влезает до него, 11:30 - до закрытия
	assert.Equal(t, []string{"09:00", "11:00"}, slotStarts(resp.Slots))
}

func TestExecute_MasterWestOfUTC(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Дата распарсена в UTC; для мастера в Нью-Йорке это все равно вторник 10 марта
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	m := testMaster(1, "Anna")
	m.Timezone = "America/New_York"

	services := &fakeServiceRepo{service: testService(), masters: []*domain.Master{m}}
	masters := &fakeMasterRepo{
		templates: map[int64]domain.WeeklyTemplate{1: {
			time.Tuesday: []domain.TemplateInterval{{Open: ts(t, "09:00"), Close: ts(t, "11:00")}},
		}},
	}

	uc := newTestUseCase(services, masters, &fakeAppointmentRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStarts(resp.Slots))
}

func TestExecute_InvalidTimezoneMasterExcluded(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	broken := testMaster(2, "Boris")
	broken.Timezone = "Mars/Olympus"

	services := &fakeServiceRepo{
		service: testService(),
		masters: []*domain.Master{testMaster(1, "Anna"), broken},
	}
	masters := &fakeMasterRepo{
		templates: map[int64]domain.WeeklyTemplate{
			1: workdayTemplate(t, "09:00", "11:00"),
			2: workdayTemplate(t, "09:00", "11:00"),
		},
	}

	uc := newTestUseCase(services, masters, &fakeAppointmentRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date})
	require.NoError(t, err)

	// Мастер с битой таймзоной не попадает ни в слоты, ни в справочник мастеров
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStarts(resp.Slots))
	require.Len(t, resp.Masters, 1)
	assert.Equal(t, int64(1), resp.Masters[0].ID)
	for _, s := range resp.Slots {
		assert.Equal(t, []int64{1}, s.MasterIDs)
	}
}

func TestExecute_SameDayCutoff(t *testing.T) {
	// Сейчас 10:05, lead time 60 минут: первый доступный слот 11:30
	now := time.Date(2026, 3, 10, 10, 5, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{
		service: testService(),
		masters: []*domain.Master{testMaster(1, "Anna")},
	}
	masters := &fakeMasterRepo{
		templates: map[int64]domain.WeeklyTemplate{1: workdayTemplate(t, "09:00", "13:00")},
	}

	uc := newTestUseCase(services, masters, &fakeAppointmentRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date})
	require.NoError(t, err)

	assert.Equal(t, []string{"11:30", "12:00"}, slotStarts(resp.Slots))
}

func TestExecute_UnavailabilityWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{
		service: testService(),
		masters: []*domain.Master{testMaster(1, "Anna")},
	}
	masters := &fakeMasterRepo{
		templates: map[int64]domain.WeeklyTemplate{1: workdayTemplate(t, "09:00", "13:00")},
		windows: map[int64][]domain.Unavailability{
			1: {{
				ID:       1,
				MasterID: 1,
				StartAt:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
				EndAt:    time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			}},
		},
	}

	uc := newTestUseCase(services, masters, &fakeAppointmentRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "12:00"}, slotStarts(resp.Slots))
}

func TestExecute_StoreError(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{
		service: testService(),
		masters: []*domain.Master{testMaster(1, "Anna")},
	}
	masters := &fakeMasterRepo{
		templates: map[int64]domain.WeeklyTemplate{1: workdayTemplate(t, "09:00", "13:00")},
	}
	appointments := &fakeAppointmentRepo{err: errors.New("connection refused")}

	uc := newTestUseCase(services, masters, appointments, now)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 10, Date: date})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeServiceRepo{}, &fakeMasterRepo{}, &fakeAppointmentRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: now})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
