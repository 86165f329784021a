package assignment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-telemedicine/internal/domain/appointments"
)

func newAppointmentAllocator(repo appointments.Repository) *AppointmentAllocator {
	a := NewAppointmentAllocator(repo, nil)
	a.now = func() time.Time { return monday10 }
	return a
}

func TestAppointmentAllocator_RespectsRequestedTimeWindow(t *testing.T) {
	f := newFixture(t, Options{})
	f.addAppointment(t, "early", "2024-01-20", "08:30", monday10.Add(-3*time.Minute))
	f.addAppointment(t, "start", "2024-01-20", "09:00", monday10.Add(-2*time.Minute))
	f.addAppointment(t, "end", "2024-01-20", "17:00", monday10.Add(-time.Minute))
	f.addAppointment(t, "late", "2024-01-20", "17:01", monday10)

	n, err := newAppointmentAllocator(f.appts).Assign(context.Background(), "doc-1", doctorSettings("doc-1", 0, 10, "Monday"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.False(t, f.appointment(t, "early").IsAssigned())
	assert.False(t, f.appointment(t, "late").IsAssigned())

	a := f.appointment(t, "start")
	require.True(t, a.IsAssigned())
	assert.Equal(t, appointments.StatusConfirmed, a.Status)
	require.NotNil(t, a.AssignedAt)
	assert.True(t, f.appointment(t, "end").IsAssigned())
}

func TestAppointmentAllocator_SingleDigitPreferredTime(t *testing.T) {
	f := newFixture(t, Options{})
	f.addAppointment(t, "unpadded", "2024-01-20", "9:30", monday10)

	n, err := newAppointmentAllocator(f.appts).Assign(context.Background(), "doc-1", doctorSettings("doc-1", 0, 10, "Monday"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, f.appointment(t, "unpadded").IsAssigned())
}

func TestAppointmentAllocator_CapacityIsPerDate(t *testing.T) {
	f := newFixture(t, Options{})
	f.addAppointment(t, "a1", "2024-01-20", "10:00", monday10.Add(-4*time.Minute))
	f.addAppointment(t, "a2", "2024-01-20", "11:00", monday10.Add(-3*time.Minute))
	f.addAppointment(t, "b1", "2024-01-21", "10:00", monday10.Add(-2*time.Minute))
	f.addAppointment(t, "b2", "2024-01-21", "11:00", monday10.Add(-time.Minute))

	n, err := newAppointmentAllocator(f.appts).Assign(context.Background(), "doc-1", doctorSettings("doc-1", 0, 1, "Monday"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Los asignados en la misma pasada cuentan para el cupo de su fecha.
	assert.True(t, f.appointment(t, "a1").IsAssigned())
	assert.False(t, f.appointment(t, "a2").IsAssigned())
	assert.True(t, f.appointment(t, "b1").IsAssigned())
	assert.False(t, f.appointment(t, "b2").IsAssigned())
}

func TestAppointmentAllocator_CountErrorSkipsAppointment(t *testing.T) {
	f := newFixture(t, Options{})
	f.addAppointment(t, "bad", "2024-01-20", "10:00", monday10.Add(-2*time.Minute))
	f.addAppointment(t, "good", "2024-01-21", "10:00", monday10.Add(-time.Minute))

	repo := &failingApptRepo{Repository: f.appts, countErrDate: "2024-01-20"}
	n, err := newAppointmentAllocator(repo).Assign(context.Background(), "doc-1", doctorSettings("doc-1", 0, 5, "Monday"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, f.appointment(t, "bad").IsAssigned())
	assert.True(t, f.appointment(t, "good").IsAssigned())
}

func TestAppointmentAllocator_ListErrorIsReturned(t *testing.T) {
	f := newFixture(t, Options{})
	repo := &failingApptRepo{Repository: f.appts, listErr: errors.New("db down")}

	_, err := newAppointmentAllocator(repo).Assign(context.Background(), "doc-1", doctorSettings("doc-1", 0, 5, "Monday"))
	assert.ErrorContains(t, err, "db down")
}

func TestAppointmentAllocator_ZeroCapacity(t *testing.T) {
	f := newFixture(t, Options{})
	f.addAppointment(t, "a1", "2024-01-20", "10:00", monday10)

	n, err := newAppointmentAllocator(f.appts).Assign(context.Background(), "doc-1", doctorSettings("doc-1", 0, 0, "Monday"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

type failingApptRepo struct {
	appointments.Repository
	listErr      error
	countErrDate string
}

func (r *failingApptRepo) ListPending(ctx context.Context) ([]appointments.Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.Repository.ListPending(ctx)
}

func (r *failingApptRepo) CountByDoctorAndDate(ctx context.Context, doctorID, date string) (int, error) {
	if date == r.countErrDate {
		return 0, errors.New("count failed")
	}
	return r.Repository.CountByDoctorAndDate(ctx, doctorID, date)
}
