package consultations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("consultation not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadState     = errors.New("invalid state")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetName     string
	Symptoms    string
	Attachments []string
}

func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PetName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Symptoms, validation.Required, validation.Length(3, 4000)),
		validation.Field(&in.Attachments, validation.Length(0, 10)),
	)
}

func (s *Service) Create(ctx context.Context, patientID string, in CreateInput) (Consultation, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return Consultation{}, ErrInvalidInput
	}

	in.PetName = strings.TrimSpace(in.PetName)
	in.Symptoms = strings.TrimSpace(in.Symptoms)
	if err := in.Validate(); err != nil {
		return Consultation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	attachments := make([]string, 0, len(in.Attachments))
	for _, a := range in.Attachments {
		if a = strings.TrimSpace(a); a != "" {
			attachments = append(attachments, a)
		}
	}

	c := Consultation{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		PetName:     in.PetName,
		Symptoms:    in.Symptoms,
		Status:      StatusPending,
		Attachments: attachments,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Consultation{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Consultation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Consultation{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Consultation, error) {
	return s.repo.ListByPatient(ctx, strings.TrimSpace(patientID))
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID string) ([]Consultation, error) {
	return s.repo.ListByDoctor(ctx, strings.TrimSpace(doctorID))
}

// Complete registra la receta. Solo el médico asignado puede cerrar la consulta.
func (s *Service) Complete(ctx context.Context, id, doctorID, prescription string) (Consultation, error) {
	id = strings.TrimSpace(id)
	doctorID = strings.TrimSpace(doctorID)
	prescription = strings.TrimSpace(prescription)
	if id == "" || doctorID == "" || prescription == "" {
		return Consultation{}, ErrInvalidInput
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Consultation{}, err
	}
	if !c.IsAssigned() || *c.DoctorID != doctorID {
		return Consultation{}, ErrForbidden
	}

	// Idempotente
	if c.Status == StatusCompleted {
		return c, nil
	}
	if c.Status != StatusInProgress {
		return Consultation{}, ErrBadState
	}

	if err := s.repo.Complete(ctx, id, doctorID, prescription); err != nil {
		return Consultation{}, err
	}
	return s.repo.GetByID(ctx, id)
}
