package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAvailable(t *testing.T) {
	st := doctorSettings("doc-1", 5, 5, "Monday", "Wednesday")
	st.AppointmentStartTime = "13:00"
	st.AppointmentEndTime = "18:00"

	at := func(day, hh, mm int) time.Time {
		return time.Date(2024, time.January, day, hh, mm, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		now  time.Time
		kind Kind
		want bool
	}{
		{"inside window", at(15, 10, 0), KindConsultation, true},
		{"start is inclusive", at(15, 9, 0), KindConsultation, true},
		{"end is inclusive", at(15, 17, 0), KindConsultation, true},
		{"one minute after end", at(15, 17, 1), KindConsultation, false},
		{"before start", at(15, 8, 59), KindConsultation, false},
		{"day not configured", at(16, 10, 0), KindConsultation, false},
		{"appointment window is separate", at(15, 10, 0), KindAppointment, false},
		{"inside appointment window", at(17, 14, 30), KindAppointment, true},
		{"unknown kind fails closed", at(15, 10, 0), Kind("surgery"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAvailable(st, tt.now, tt.kind))
		})
	}
}

func TestIsAvailable_DayNamesAreCaseInsensitive(t *testing.T) {
	st := doctorSettings("doc-1", 5, 5, " monday ")
	assert.True(t, IsAvailable(st, monday10, KindConsultation))
}

func TestIsAvailable_NoDays(t *testing.T) {
	st := doctorSettings("doc-1", 5, 5)
	assert.False(t, IsAvailable(st, monday10, KindConsultation))
}

func TestWithinWindow_NormalizesSeconds(t *testing.T) {
	assert.True(t, WithinWindow("17:00", "09:00:00", "17:00:00"))
	assert.True(t, WithinWindow("09:00:00", "09:00", "17:00"))
	assert.False(t, WithinWindow("17:30", "09:00:00", "17:00:00"))
}

func TestWithinWindow_PadsSingleDigitHours(t *testing.T) {
	assert.True(t, WithinWindow("9:30", "09:00", "17:00"))
	assert.False(t, WithinWindow("20:00", "08:00", "9:30"))
	assert.True(t, WithinWindow("09:15", "8:00", "9:30"))
}

func TestIsAvailable_SingleDigitEndTime(t *testing.T) {
	st := doctorSettings("doc-1", 5, 5, "Monday")
	st.ConsultationStartTime = "08:00"
	st.ConsultationEndTime = "9:30"

	evening := time.Date(2024, time.January, 15, 20, 0, 0, 0, time.UTC)
	assert.False(t, IsAvailable(st, evening, KindConsultation))
	assert.True(t, IsAvailable(st, time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC), KindConsultation))
}

func TestRemainingSlots(t *testing.T) {
	assert.Equal(t, 3, RemainingSlots(5, 2))
	assert.Equal(t, 0, RemainingSlots(5, 5))
	assert.Equal(t, 0, RemainingSlots(2, 7))
	assert.Equal(t, 0, RemainingSlots(0, 0))
}

func TestDayBounds(t *testing.T) {
	now := time.Date(2024, time.January, 15, 23, 30, 0, 0, time.FixedZone("ART", -3*3600))

	from, to := DayBounds(now)

	// 23:30 en UTC-3 ya es el 16 en UTC.
	assert.Equal(t, time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.January, 16, 23, 59, 59, 999999999, time.UTC), to)
}
