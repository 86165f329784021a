package appointments_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "vet-telemedicine/internal/adapters/storage/memory"
	"vet-telemedicine/internal/domain/appointments"
)

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format(appointments.DateLayout)
}

func TestCreate(t *testing.T) {
	svc := appointments.NewService(mem.NewAppointmentRepo())

	a, err := svc.Create(context.Background(), "patient-1", appointments.CreateInput{
		PetName:       "Luna",
		Reason:        "annual vaccines",
		PreferredDate: tomorrow(),
		PreferredTime: "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusPending, a.Status)
	assert.Nil(t, a.DoctorID)

	got, err := svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.PreferredDate, got.PreferredDate)
	assert.Equal(t, "10:30", got.PreferredTime)

	mine, err := svc.ListByPatient(context.Background(), "patient-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCreate_Validation(t *testing.T) {
	svc := appointments.NewService(mem.NewAppointmentRepo())
	ctx := context.Background()

	base := appointments.CreateInput{
		PetName:       "Luna",
		Reason:        "annual vaccines",
		PreferredDate: tomorrow(),
		PreferredTime: "10:30",
	}

	bad := base
	bad.PreferredDate = "15/01/2024"
	_, err := svc.Create(ctx, "p1", bad)
	assert.ErrorIs(t, err, appointments.ErrInvalidInput)

	bad = base
	bad.PreferredTime = "25:00"
	_, err = svc.Create(ctx, "p1", bad)
	assert.ErrorIs(t, err, appointments.ErrInvalidInput)

	bad = base
	bad.PreferredTime = "9am"
	_, err = svc.Create(ctx, "p1", bad)
	assert.ErrorIs(t, err, appointments.ErrInvalidInput)

	bad = base
	bad.PreferredTime = "10:75"
	_, err = svc.Create(ctx, "p1", bad)
	assert.ErrorIs(t, err, appointments.ErrInvalidInput)

	bad = base
	bad.PreferredDate = "2000-01-01"
	_, err = svc.Create(ctx, "p1", bad)
	assert.ErrorIs(t, err, appointments.ErrInvalidInput)

	_, err = svc.Create(ctx, "", base)
	assert.ErrorIs(t, err, appointments.ErrInvalidInput)
}

func TestCreate_PadsPreferredTime(t *testing.T) {
	svc := appointments.NewService(mem.NewAppointmentRepo())

	a, err := svc.Create(context.Background(), "patient-1", appointments.CreateInput{
		PetName:       "Luna",
		Reason:        "annual vaccines",
		PreferredDate: tomorrow(),
		PreferredTime: "9:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:30", a.PreferredTime)

	got, err := svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:30", got.PreferredTime)
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "09:30", appointments.NormalizeTime("9:30"))
	assert.Equal(t, "17:00", appointments.NormalizeTime("17:00:00"))
	assert.Equal(t, "soon", appointments.NormalizeTime(" soon "))
}

func TestParseStatus_LegacyAssigned(t *testing.T) {
	assert.Equal(t, appointments.StatusConfirmed, appointments.ParseStatus("assigned"))
	assert.Equal(t, appointments.StatusPending, appointments.ParseStatus("pending"))
}
