package transition_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
)

// --- фейки ---

type fakeAppointmentRepo struct {
	appointment  *domain.Appointment
	updateErr    error
	updated      *domain.AppointmentStatus
	updateReason *string
	historyCalls int
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *f.appointment
	return &out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus, reason *string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = &status
	f.updateReason = reason
	f.appointment.Status = status
	if reason != nil {
		f.appointment.CancellationReason = reason
	}
	return nil
}

func (f *fakeAppointmentRepo) AddStatusHistory(_ context.Context, _ int64, _ domain.AppointmentStatus, _ int64, _ *string) error {
	f.historyCalls++
	return nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeNotifier struct {
	transitions []domain.AppointmentStatus // предыдущие статусы переданных событий
}

func (f *fakeNotifier) AppointmentTransitioned(_ *domain.Appointment, from domain.AppointmentStatus) {
	f.transitions = append(f.transitions, from)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- тестовые данные ---

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:        42,
		MasterID:  1,
		ServiceID: 10,
		ClientID:  7,
		StartAt:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

type env struct {
	repo     *fakeAppointmentRepo
	tx       *fakeTxManager
	notifier *fakeNotifier
	uc       *UseCase
}

func newEnv(status domain.AppointmentStatus) *env {
	e := &env{
		repo:     &fakeAppointmentRepo{appointment: testAppointment(status)},
		tx:       &fakeTxManager{},
		notifier: &fakeNotifier{},
	}
	e.uc = NewUseCase(e.repo, e.tx, e.notifier, nopLogger{})
	return e
}

// --- тесты ---

func TestExecute_OperatorConfirms(t *testing.T) {
	e := newEnv(domain.StatusPending)

	resp, err := e.uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		ActorID:       99,
		ActorRole:     domain.RoleOperator,
		TargetStatus:  "confirmed",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.StatusPending), resp.PreviousStatus)
	assert.Equal(t, 1, e.tx.calls)
	assert.Equal(t, 1, e.repo.historyCalls)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusPending}, e.notifier.transitions)
}

func TestExecute_ClientCancelsOwnAppointment(t *testing.T) {
	e := newEnv(domain.StatusConfirmed)
	reason := "не смогу прийти"

	resp, err := e.uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		ActorID:       7,
		ActorRole:     domain.RoleClient,
		TargetStatus:  TargetCancelled,
		Reason:        &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelledByClient), resp.Status)
	require.NotNil(t, e.repo.updateReason)
	assert.Equal(t, reason, *e.repo.updateReason)
}

func TestExecute_OperatorCancelResolvesToOperatorVariant(t *testing.T) {
	e := newEnv(domain.StatusPending)

	resp, err := e.uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		ActorID:       99,
		ActorRole:     domain.RoleOperator,
		TargetStatus:  TargetCancelled,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelledByOperator), resp.Status)
}

func TestExecute_ClientCannotCancelForeignAppointment(t *testing.T) {
	e := newEnv(domain.StatusConfirmed)

	_, err := e.uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		ActorID:       1000, // чужая запись
		ActorRole:     domain.RoleClient,
		TargetStatus:  TargetCancelled,
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, e.repo.updated)
	assert.Empty(t, e.notifier.transitions)
}

func TestExecute_ClientCannotConfirm(t *testing.T) {
	e := newEnv(domain.StatusPending)

	_, err := e.uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		ActorID:       7,
		ActorRole:     domain.RoleClient,
		TargetStatus:  "confirmed",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_TransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		target  string
		wantErr bool
	}{
		{"pending to confirmed", domain.StatusPending, "confirmed", false},
		{"pending to cancelled", domain.StatusPending, TargetCancelled, false},
		{"pending to completed", domain.StatusPending, "completed", true},
		{"pending to no_show", domain.StatusPending, "no_show", true},
		{"confirmed to completed", domain.StatusConfirmed, "completed", false},
		{"confirmed to no_show", domain.StatusConfirmed, "no_show", false},
		{"confirmed to cancelled", domain.StatusConfirmed, TargetCancelled, false},
		{"completed is terminal", domain.StatusCompleted, TargetCancelled, true},
		{"no_show is terminal", domain.StatusNoShow, "confirmed", true},
		{"cancelled is terminal", domain.StatusCancelledByClient, "confirmed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(tt.from)

			_, err := e.uc.Execute(context.Background(), &Request{
				AppointmentID: 42,
				ActorID:       99,
				ActorRole:     domain.RoleOperator,
				TargetStatus:  tt.target,
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	e := newEnv(domain.StatusPending)

	_, err := e.uc.Execute(context.Background(), &Request{
		AppointmentID: 777,
		ActorID:       99,
		ActorRole:     domain.RoleOperator,
		TargetStatus:  "confirmed",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_UnknownTargetStatus(t *testing.T) {
	e := newEnv(domain.StatusPending)

	_, err := e.uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		ActorID:       99,
		ActorRole:     domain.RoleOperator,
		TargetStatus:  "archived",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidRole(t *testing.T) {
	e := newEnv(domain.StatusPending)

	_, err := e.uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		ActorID:       99,
		ActorRole:     "admin",
		TargetStatus:  "confirmed",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
