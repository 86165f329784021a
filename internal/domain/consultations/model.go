package consultations

import "time"

// Status define el ciclo de vida de una consulta.
// @Enum pending, in_progress, completed
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Consultation es una solicitud de consulta remota hecha por el dueño de una mascota.
//
// Invariante: DoctorID != nil <=> Status != pending, y AssignedAt != nil <=> DoctorID != nil.
type Consultation struct {
	ID        string
	PatientID string // usuario dueño de la mascota

	PetName  string
	Symptoms string

	Status Status

	DoctorID   *string
	AssignedAt *time.Time

	Prescription *string
	Attachments  []string // referencias a archivos (el storage es externo)

	CreatedAt time.Time
}

// IsAssigned indica si la consulta ya tiene médico.
func (c Consultation) IsAssigned() bool {
	return c.DoctorID != nil && *c.DoctorID != ""
}
