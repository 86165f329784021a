package assignment

import (
	"time"

	"vet-telemedicine/internal/domain/doctorsettings"
)

// Kind distingue las dos ventanas horarias de un médico.
type Kind string

const (
	KindConsultation Kind = "consultation"
	KindAppointment  Kind = "appointment"
)

const clockLayout = "15:04"

// IsAvailable decide si el médico atiende ahora el tipo de trabajo indicado.
// Falla cerrado: día no configurado o kind desconocido => false.
// No mira cupos; eso es trabajo de los allocators.
func IsAvailable(st doctorsettings.Settings, now time.Time, kind Kind) bool {
	if !st.AvailableOn(now.Weekday()) {
		return false
	}
	start, end, ok := window(st, kind)
	if !ok {
		return false
	}
	return WithinWindow(now.Format(clockLayout), start, end)
}

// WithinWindow compara HH:MM como strings: start <= clock <= end (inclusive en ambos extremos).
func WithinWindow(clock, start, end string) bool {
	clock = doctorsettings.NormalizeClock(clock)
	start = doctorsettings.NormalizeClock(start)
	end = doctorsettings.NormalizeClock(end)
	return start <= clock && clock <= end
}

func window(st doctorsettings.Settings, kind Kind) (string, string, bool) {
	switch kind {
	case KindConsultation:
		return st.ConsultationStartTime, st.ConsultationEndTime, true
	case KindAppointment:
		return st.AppointmentStartTime, st.AppointmentEndTime, true
	default:
		return "", "", false
	}
}

// RemainingSlots = max - used, nunca negativo.
func RemainingSlots(max, used int) int {
	if left := max - used; left > 0 {
		return left
	}
	return 0
}

// DayBounds devuelve [00:00:00, 23:59:59.999999999] del día UTC de now.
func DayBounds(now time.Time) (time.Time, time.Time) {
	u := now.UTC()
	from := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.Add(24*time.Hour - time.Nanosecond)
}
