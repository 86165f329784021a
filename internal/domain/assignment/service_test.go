package assignment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-telemedicine/internal/domain/consultations"
	"vet-telemedicine/internal/domain/doctorsettings"
)

func TestAssignForDoctor_AvailableDoctorGetsPendingConsultation(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 5, 5, "Monday"))
	f.addConsultation(t, "c1", monday10.Add(-10*time.Minute))

	res, err := f.svc.AssignForDoctor(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Consultations)
	assert.Equal(t, 0, res.Appointments)
	assert.Equal(t, "Auto-assigned 1 consultations and 0 appointments", res.Message)

	c := f.consultation(t, "c1")
	require.True(t, c.IsAssigned())
	assert.Equal(t, "doc-1", *c.DoctorID)
	assert.Equal(t, consultations.StatusInProgress, c.Status)
	require.NotNil(t, c.AssignedAt)
	assert.True(t, c.AssignedAt.Equal(monday10))
}

func TestAssignForDoctor_CapacityBoundsAssignment(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 3, 0, "Monday"))
	for i := 0; i < 8; i++ {
		f.addConsultation(t, fmt.Sprintf("c%d", i), monday10.Add(-time.Duration(8-i)*time.Minute))
	}

	res, err := f.svc.AssignForDoctor(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Consultations)

	for i := 0; i < 8; i++ {
		c := f.consultation(t, fmt.Sprintf("c%d", i))
		assert.Equal(t, i < 3, c.IsAssigned(), "c%d", i)
	}
}

func TestAssignForDoctor_UnavailableSkipsConsultationsButNotAppointments(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 5, 5, "Sunday"))
	f.addConsultation(t, "c1", monday10.Add(-time.Minute))
	f.addAppointment(t, "a1", "2024-01-21", "10:00", monday10.Add(-time.Minute))

	res, err := f.svc.AssignForDoctor(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Consultations)
	assert.Equal(t, 1, res.Appointments)
	assert.False(t, f.consultation(t, "c1").IsAssigned())
	assert.True(t, f.appointment(t, "a1").IsAssigned())
}

func TestAssignForDoctor_OutsideHours(t *testing.T) {
	f := newFixture(t, Options{})
	st := doctorSettings("doc-1", 5, 0, "Monday")
	st.ConsultationStartTime = "14:00"
	st.ConsultationEndTime = "18:00"
	f.addDoctor(t, st)
	f.addConsultation(t, "c1", monday10.Add(-time.Minute))

	res, err := f.svc.AssignForDoctor(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Zero(t, res.Total())
	assert.Equal(t, msgNothingToAssign, res.Message)
}

func TestAssignForDoctor_UsesScheduleLocation(t *testing.T) {
	// 10:00 UTC = 07:00 en UTC-3: fuera de 09-17.
	loc := time.FixedZone("UTC-3", -3*3600)
	f := newFixture(t, Options{Location: loc})
	f.addDoctor(t, doctorSettings("doc-1", 5, 0, "Monday"))
	f.addConsultation(t, "c1", monday10.Add(-time.Minute))

	res, err := f.svc.AssignForDoctor(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Zero(t, res.Consultations)
}

func TestAssignForDoctor_MissingSettings(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.svc.AssignForDoctor(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrSettingsNotFound)

	_, err = f.svc.AssignForDoctor(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssignForDoctor_IsIdempotent(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 5, 5, "Monday"))
	f.addConsultation(t, "c1", monday10.Add(-time.Minute))
	f.addAppointment(t, "a1", "2024-01-20", "10:00", monday10.Add(-time.Minute))

	first, err := f.svc.AssignForDoctor(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, first.Total())

	second, err := f.svc.AssignForDoctor(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Zero(t, second.Total())
	assert.Equal(t, "No new assignments needed", second.Message)
}

func TestAssignAllPending_DoctorsInStoreOrder(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 2, 0, "Monday"))
	f.addDoctor(t, doctorSettings("doc-2", 2, 0, "Monday"))
	f.addDoctor(t, doctorSettings("doc-off", 5, 0, "Sunday"))
	for i := 0; i < 3; i++ {
		f.addConsultation(t, fmt.Sprintf("c%d", i), monday10.Add(-time.Duration(3-i)*time.Minute))
	}

	res, err := f.svc.AssignAllPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Consultations)

	assert.Equal(t, "doc-1", *f.consultation(t, "c0").DoctorID)
	assert.Equal(t, "doc-1", *f.consultation(t, "c1").DoctorID)
	assert.Equal(t, "doc-2", *f.consultation(t, "c2").DoctorID)
}

func TestAssignAllPending_StoreErrorForOneDoctorIsSkipped(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 2, 0, "Monday"))
	f.addConsultation(t, "c1", monday10.Add(-time.Minute))

	repo := &failingConsultRepo{Repository: f.consults, countErr: errors.New("db down")}
	svc := NewService(doctorsettings.NewService(f.settings, nil, 0), repo, f.appts, nil, Options{})
	svc.now = func() time.Time { return monday10 }

	res, err := svc.AssignAllPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Total())
}

func TestAssignAllPending_SettingsListError(t *testing.T) {
	f := newFixture(t, Options{})
	svc := NewService(brokenSettings{}, f.consults, f.appts, nil, Options{})

	_, err := svc.AssignAllPending(context.Background())
	assert.ErrorContains(t, err, "settings unavailable")
}

func TestAssignAllPending_CanceledContext(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 5, 0, "Monday"))
	f.addConsultation(t, "c1", monday10.Add(-time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.AssignAllPending(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.consultation(t, "c1").IsAssigned())
}

// Varias corridas en paralelo (como varios pacientes creando solicitudes a la vez):
// cada consulta termina con un solo médico. El cupo diario es blando bajo
// concurrencia, así que acá no se chequea.
func TestAssignAllPending_ConcurrentRunsAssignAtMostOnce(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 7, 0, "Monday"))
	f.addDoctor(t, doctorSettings("doc-2", 7, 0, "Monday"))
	f.addDoctor(t, doctorSettings("doc-3", 7, 0, "Monday"))

	const pending = 30
	for i := 0; i < pending; i++ {
		f.addConsultation(t, fmt.Sprintf("c%02d", i), monday10.Add(-time.Duration(pending-i)*time.Second))
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.svc.AssignAllPending(context.Background())
			assert.NoError(t, err)
			mu.Lock()
			total += res.Consultations
			mu.Unlock()
		}()
	}
	wg.Wait()

	assigned := 0
	for i := 0; i < pending; i++ {
		if f.consultation(t, fmt.Sprintf("c%02d", i)).IsAssigned() {
			assigned++
		}
	}

	// Si una consulta se hubiera asignado dos veces, la suma reportada superaría las filas escritas.
	assert.Equal(t, assigned, total)
	assert.GreaterOrEqual(t, assigned, 7)
}

func TestAssignAfterCreate_Messages(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, Options{AutoAssignEnabled: false})
		f.addDoctor(t, doctorSettings("doc-1", 5, 5, "Monday"))
		f.addConsultation(t, "c1", monday10)

		assert.Equal(t, MsgAutoAssignOff, f.svc.AssignAfterCreate(context.Background()))
		assert.False(t, f.consultation(t, "c1").IsAssigned())
	})

	t.Run("assigned", func(t *testing.T) {
		f := newFixture(t, Options{AutoAssignEnabled: true})
		f.addDoctor(t, doctorSettings("doc-1", 5, 5, "Monday"))
		f.addConsultation(t, "c1", monday10)

		assert.Equal(t, MsgAssigned, f.svc.AssignAfterCreate(context.Background()))
		assert.True(t, f.consultation(t, "c1").IsAssigned())
	})

	t.Run("nobody available", func(t *testing.T) {
		f := newFixture(t, Options{AutoAssignEnabled: true})
		f.addDoctor(t, doctorSettings("doc-1", 5, 5, "Saturday"))
		f.addConsultation(t, "c1", monday10)

		assert.Equal(t, MsgNoneAvailable, f.svc.AssignAfterCreate(context.Background()))
	})

	t.Run("failure", func(t *testing.T) {
		f := newFixture(t, Options{AutoAssignEnabled: true})
		svc := NewService(brokenSettings{}, f.consults, f.appts, nil, Options{AutoAssignEnabled: true})

		assert.Equal(t, MsgAssignFailed, svc.AssignAfterCreate(context.Background()))
	})
}

type brokenSettings struct{}

func (brokenSettings) Get(ctx context.Context, doctorID string) (doctorsettings.Settings, error) {
	return doctorsettings.Settings{}, errors.New("settings unavailable")
}

func (brokenSettings) List(ctx context.Context) ([]doctorsettings.Settings, error) {
	return nil, errors.New("settings unavailable")
}
