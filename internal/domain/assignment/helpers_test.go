package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mem "vet-telemedicine/internal/adapters/storage/memory"
	"vet-telemedicine/internal/domain/appointments"
	"vet-telemedicine/internal/domain/consultations"
	"vet-telemedicine/internal/domain/doctorsettings"
)

// Lunes 15/01/2024 10:00 UTC.
var monday10 = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	consults consultations.Repository
	appts    appointments.Repository
	settings doctorsettings.Repository
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	f := &fixture{
		consults: mem.NewConsultationRepo(),
		appts:    mem.NewAppointmentRepo(),
		settings: mem.NewDoctorSettingsRepo(),
	}
	settingsSvc := doctorsettings.NewService(f.settings, nil, 0)
	f.svc = NewService(settingsSvc, f.consults, f.appts, nil, opts)
	f.svc.now = func() time.Time { return monday10 }
	return f
}

func doctorSettings(doctorID string, maxConsult, maxAppt int, days ...string) doctorsettings.Settings {
	return doctorsettings.Settings{
		ID:                     "settings-" + doctorID,
		DoctorID:               doctorID,
		MaxConsultationsPerDay: maxConsult,
		MaxAppointmentsPerDay:  maxAppt,
		ConsultationStartTime:  "09:00",
		ConsultationEndTime:    "17:00",
		AppointmentStartTime:   "09:00",
		AppointmentEndTime:     "17:00",
		DaysAvailable:          days,
		CreatedAt:              monday10.Add(-48 * time.Hour),
		UpdatedAt:              monday10.Add(-48 * time.Hour),
	}
}

func (f *fixture) addDoctor(t *testing.T, st doctorsettings.Settings) {
	t.Helper()
	require.NoError(t, f.settings.Upsert(context.Background(), st))
}

func (f *fixture) addConsultation(t *testing.T, id string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.consults.Create(context.Background(), consultations.Consultation{
		ID:        id,
		PatientID: "patient-1",
		PetName:   "Milo",
		Symptoms:  "cough",
		Status:    consultations.StatusPending,
		CreatedAt: createdAt,
	}))
}

func (f *fixture) addAppointment(t *testing.T, id, date, clock string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.appts.Create(context.Background(), appointments.Appointment{
		ID:            id,
		PatientID:     "patient-1",
		PetName:       "Luna",
		Reason:        "vaccines",
		PreferredDate: date,
		PreferredTime: clock,
		Status:        appointments.StatusPending,
		CreatedAt:     createdAt,
	}))
}

func (f *fixture) consultation(t *testing.T, id string) consultations.Consultation {
	t.Helper()
	c, err := f.consults.GetByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

func (f *fixture) appointment(t *testing.T, id string) appointments.Appointment {
	t.Helper()
	a, err := f.appts.GetByID(context.Background(), id)
	require.NoError(t, err)
	return a
}
