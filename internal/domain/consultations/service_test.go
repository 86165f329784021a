package consultations_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "vet-telemedicine/internal/adapters/storage/memory"
	"vet-telemedicine/internal/domain/consultations"
)

func newService() (*consultations.Service, consultations.Repository) {
	repo := mem.NewConsultationRepo()
	return consultations.NewService(repo), repo
}

func TestCreate(t *testing.T) {
	svc, _ := newService()

	c, err := svc.Create(context.Background(), "patient-1", consultations.CreateInput{
		PetName:     "  Milo ",
		Symptoms:    "coughing since yesterday",
		Attachments: []string{"xray.png", " "},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Milo", c.PetName)
	assert.Equal(t, consultations.StatusPending, c.Status)
	assert.Nil(t, c.DoctorID)
	assert.Nil(t, c.AssignedAt)
	assert.Equal(t, []string{"xray.png"}, c.Attachments)
	assert.WithinDuration(t, time.Now().UTC(), c.CreatedAt, 5*time.Second)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "", consultations.CreateInput{PetName: "Milo", Symptoms: "cough"})
	assert.ErrorIs(t, err, consultations.ErrInvalidInput)

	_, err = svc.Create(ctx, "p1", consultations.CreateInput{PetName: "", Symptoms: "cough"})
	assert.ErrorIs(t, err, consultations.ErrInvalidInput)

	_, err = svc.Create(ctx, "p1", consultations.CreateInput{PetName: "Milo", Symptoms: strings.Repeat("x", 5000)})
	assert.ErrorIs(t, err, consultations.ErrInvalidInput)
}

func TestComplete(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "patient-1", consultations.CreateInput{PetName: "Milo", Symptoms: "cough"})
	require.NoError(t, err)

	// Sin asignar: nadie puede completarla.
	_, err = svc.Complete(ctx, c.ID, "doc-1", "rest")
	assert.ErrorIs(t, err, consultations.ErrForbidden)

	ok, err := repo.Assign(ctx, c.ID, "doc-1", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Complete(ctx, c.ID, "doc-2", "rest")
	assert.ErrorIs(t, err, consultations.ErrForbidden)

	_, err = svc.Complete(ctx, c.ID, "doc-1", "  ")
	assert.ErrorIs(t, err, consultations.ErrInvalidInput)

	done, err := svc.Complete(ctx, c.ID, "doc-1", "rest and fluids")
	require.NoError(t, err)
	assert.Equal(t, consultations.StatusCompleted, done.Status)
	require.NotNil(t, done.Prescription)
	assert.Equal(t, "rest and fluids", *done.Prescription)

	// Idempotente.
	again, err := svc.Complete(ctx, c.ID, "doc-1", "other")
	require.NoError(t, err)
	assert.Equal(t, "rest and fluids", *again.Prescription)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, consultations.ErrNotFound)
}
