package doctorsettings

import (
	"strings"
	"time"
)

// Settings es la configuración de disponibilidad de un médico (una fila por médico).
// La edita el médico desde su formulario; el asignador solo la lee.
type Settings struct {
	ID       string
	DoctorID string

	MaxConsultationsPerDay int
	MaxAppointmentsPerDay  int

	// Horas en formato HH:MM (24h, con cero a la izquierda).
	ConsultationStartTime string
	ConsultationEndTime   string
	AppointmentStartTime  string
	AppointmentEndTime    string

	// Nombres de días en inglés: "Monday", "Tuesday", ...
	DaysAvailable []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableOn indica si el día está en DaysAvailable (sin distinguir mayúsculas).
func (s Settings) AvailableOn(day time.Weekday) bool {
	name := day.String()
	for _, d := range s.DaysAvailable {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

// NormalizeClock lleva "9:30", "09:30" o "17:00:00" a HH:MM con cero a la izquierda.
// La comparación de ventanas es lexicográfica y necesita el mismo largo.
// Si no parsea devuelve el valor recortado; la validación lo rechaza después.
func NormalizeClock(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", clockLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clockLayout)
		}
	}
	return s
}
