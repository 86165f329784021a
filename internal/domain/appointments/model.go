package appointments

import (
	"strings"
	"time"
)

// Status define el ciclo de vida de un turno.
// @Enum pending, confirmed, completed, cancelled
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"

	// statusAssignedLegacy aparece en filas viejas; se lee como confirmed.
	statusAssignedLegacy Status = "assigned"
)

// ParseStatus normaliza el valor guardado en la base.
func ParseStatus(s string) Status {
	st := Status(s)
	if st == statusAssignedLegacy {
		return StatusConfirmed
	}
	return st
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NormalizeTime lleva "9:30" o "09:30:00" a HH:MM; si no parsea lo deja recortado.
func NormalizeTime(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", TimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimeLayout)
		}
	}
	return s
}

// Appointment es un turno pedido para una fecha y hora concreta.
//
// Invariante: DoctorID != nil => Status != pending.
type Appointment struct {
	ID        string
	PatientID string

	PetName string
	Reason  string

	PreferredDate string // YYYY-MM-DD
	PreferredTime string // HH:MM (24h)

	Status Status

	DoctorID   *string
	AssignedAt *time.Time

	Prescription *string

	CreatedAt time.Time
}

func (a Appointment) IsAssigned() bool {
	return a.DoctorID != nil && *a.DoctorID != ""
}
