package consultations

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c Consultation) error
	GetByID(ctx context.Context, id string) (Consultation, error)
	ListByPatient(ctx context.Context, patientID string) ([]Consultation, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]Consultation, error)

	// ListPending devuelve consultas sin médico y en estado pending,
	// ordenadas por created_at asc. limit <= 0 = sin límite.
	ListPending(ctx context.Context, limit int) ([]Consultation, error)

	// CountAssignedBetween cuenta las consultas del médico con assigned_at en [from, to].
	CountAssignedBetween(ctx context.Context, doctorID string, from, to time.Time) (int, error)

	// Assign es un compare-and-swap: solo escribe si doctor_id sigue en NULL.
	// Devuelve false (sin error) si otro proceso ya la tomó.
	Assign(ctx context.Context, id, doctorID string, at time.Time) (bool, error)

	// Complete guarda la receta y cierra la consulta, solo si doctorID es el asignado.
	Complete(ctx context.Context, id, doctorID, prescription string) error
}
