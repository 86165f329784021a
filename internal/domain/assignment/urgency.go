package assignment

import (
	"strings"
	"time"
)

// Urgency es solo informativa (panel de diagnóstico). No cambia el orden de asignación.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

var urgentKeywords = []string{
	"severe", "emergency", "critical", "urgent",
	"bleeding", "pain", "vomiting", "lethargy",
}

// ClassifyUrgency: palabra clave en síntomas o menos de 2h => high; menos de 12h => medium.
func ClassifyUrgency(symptoms string, createdAt, now time.Time) Urgency {
	s := strings.ToLower(symptoms)
	for _, kw := range urgentKeywords {
		if strings.Contains(s, kw) {
			return UrgencyHigh
		}
	}

	age := now.Sub(createdAt)
	switch {
	case age < 2*time.Hour:
		return UrgencyHigh
	case age < 12*time.Hour:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}
