package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-telemedicine/internal/domain/consultations"
)

func TestExplain_NotFound(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.svc.Explain(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrConsultationNotFound)

	_, err = f.svc.Diagnose(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestExplain_AlreadyAssigned(t *testing.T) {
	f := newFixture(t, Options{})
	f.addConsultation(t, "c1", monday10.Add(-time.Hour))
	_, err := f.consults.Assign(context.Background(), "c1", "doc-9", monday10)
	require.NoError(t, err)

	rep, err := f.svc.Explain(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, rep.Success)
	assert.Equal(t, "doc-9", rep.DoctorID)
	assert.Contains(t, rep.Message, "doc-9")
	assert.Empty(t, rep.Reasons)
	assert.False(t, rep.AssignmentAttempted)
}

func TestExplain_NoDoctorsConfigured(t *testing.T) {
	f := newFixture(t, Options{})
	f.addConsultation(t, "c1", monday10.Add(-time.Hour))

	rep, err := f.svc.Explain(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, rep.Success)
	assert.Equal(t, []string{"No doctors have configured their availability settings"}, rep.Reasons)
}

func TestExplain_ReasonsPerDoctor(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	f.addDoctor(t, doctorSettings("doc-weekend", 5, 0, "Saturday", "Sunday"))

	late := doctorSettings("doc-late", 5, 0, "Monday")
	late.ConsultationStartTime = "18:00"
	late.ConsultationEndTime = "22:00"
	f.addDoctor(t, late)

	f.addDoctor(t, doctorSettings("doc-full", 1, 0, "Monday"))
	f.addConsultation(t, "taken", monday10.Add(-3*time.Hour))
	_, err := f.consults.Assign(ctx, "taken", "doc-full", monday10.Add(-time.Hour))
	require.NoError(t, err)

	f.addConsultation(t, "c1", monday10.Add(-time.Hour))

	rep, err := f.svc.Explain(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, rep.Success)
	require.Len(t, rep.Reasons, 3)
	assert.Contains(t, rep.Reasons[0], "doc-weekend")
	assert.Contains(t, rep.Reasons[0], "not available on Monday")
	assert.Contains(t, rep.Reasons[1], "outside consultation hours 18:00-22:00 (now 10:00)")
	assert.Contains(t, rep.Reasons[2], "daily consultation limit reached (1/1)")

	// Solo lectura.
	assert.False(t, f.consultation(t, "c1").IsAssigned())
	assert.False(t, rep.AssignmentAttempted)
}

func TestExplain_EligibleDoctorReportsQueue(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 5, 0, "Monday"))
	f.addConsultation(t, "older", monday10.Add(-2*time.Hour))
	f.addConsultation(t, "c1", monday10.Add(-time.Hour))

	rep, err := f.svc.Explain(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, rep.Success)
	assert.Contains(t, rep.Message, "1 doctor(s) can take this consultation")
	assert.Contains(t, rep.Message, "1 older pending consultation(s) are ahead in the queue")
	assert.Empty(t, rep.Reasons)
	assert.False(t, f.consultation(t, "c1").IsAssigned())
}

func TestExplain_ReasonsOnlyListIneligibleDoctors(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-ok", 5, 0, "Monday"))
	f.addDoctor(t, doctorSettings("doc-friday", 5, 0, "Friday"))
	f.addConsultation(t, "older", monday10.Add(-2*time.Hour))
	f.addConsultation(t, "c1", monday10.Add(-time.Hour))

	rep, err := f.svc.Explain(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, rep.Reasons, 1)
	assert.Contains(t, rep.Reasons[0], "Doctor doc-friday:")
	assert.Contains(t, rep.Message, "1 doctor(s) can take this consultation")
	assert.Contains(t, rep.Message, "1 older pending consultation(s) are ahead in the queue")
}

func TestExplain_NotPending(t *testing.T) {
	f := newFixture(t, Options{})
	require.NoError(t, f.consults.Create(context.Background(), consultations.Consultation{
		ID:        "weird",
		PatientID: "p",
		PetName:   "Milo",
		Symptoms:  "cough",
		Status:    consultations.StatusCompleted,
		CreatedAt: monday10.Add(-time.Hour),
	}))

	rep, err := f.svc.Diagnose(context.Background(), "weird")
	require.NoError(t, err)
	assert.False(t, rep.Success)
	assert.Contains(t, rep.Message, "completed")
	assert.False(t, rep.AssignmentAttempted)
}

func TestDiagnose_AssignsWhenPossible(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 5, 0, "Monday"))
	f.addConsultation(t, "c1", monday10.Add(-30*time.Minute))

	rep, err := f.svc.Diagnose(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, rep.Success)
	assert.True(t, rep.AssignmentAttempted)
	assert.Equal(t, "doc-1", rep.DoctorID)
	assert.Empty(t, rep.Reasons)
	assert.Equal(t, UrgencyHigh, rep.Urgency)

	assert.True(t, f.consultation(t, "c1").IsAssigned())
}

func TestDiagnose_StillUnassigned(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 5, 0, "Friday"))
	f.addConsultation(t, "c1", monday10.Add(-20*time.Hour))

	rep, err := f.svc.Diagnose(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, rep.Success)
	assert.True(t, rep.AssignmentAttempted)
	assert.Contains(t, rep.Message, "still pending")
	require.Len(t, rep.Reasons, 1)
	assert.Contains(t, rep.Reasons[0], "not available on Monday")
	assert.Equal(t, UrgencyLow, rep.Urgency)
}

func TestRetryAssign(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, doctorSettings("doc-1", 5, 0, "Monday"))
	f.addConsultation(t, "c1", monday10.Add(-time.Minute))

	rep, err := f.svc.RetryAssign(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, rep.Success)
	assert.True(t, rep.AssignmentAttempted)
	assert.Equal(t, "doc-1", rep.DoctorID)
}
