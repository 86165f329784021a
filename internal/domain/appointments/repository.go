package appointments

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]Appointment, error)

	// ListPending: sin médico, status pending, created_at asc.
	ListPending(ctx context.Context) ([]Appointment, error)

	// CountByDoctorAndDate cuenta turnos del médico para una fecha (YYYY-MM-DD).
	CountByDoctorAndDate(ctx context.Context, doctorID, date string) (int, error)

	// Assign: compare-and-swap sobre doctor_id IS NULL. false = carrera perdida.
	Assign(ctx context.Context, id, doctorID string, at time.Time) (bool, error)
}
