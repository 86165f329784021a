package appointments

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
)

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

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
	PetName       string
	Reason        string
	PreferredDate string // YYYY-MM-DD
	PreferredTime string // HH:MM
}

func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PetName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Reason, validation.Required, validation.Length(3, 2000)),
		validation.Field(&in.PreferredDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&in.PreferredTime, validation.Required, validation.Match(timePattern)),
	)
}

func (s *Service) Create(ctx context.Context, patientID string, in CreateInput) (Appointment, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return Appointment{}, ErrInvalidInput
	}

	in.PetName = strings.TrimSpace(in.PetName)
	in.Reason = strings.TrimSpace(in.Reason)
	in.PreferredDate = strings.TrimSpace(in.PreferredDate)
	in.PreferredTime = NormalizeTime(in.PreferredTime)
	if err := in.Validate(); err != nil {
		return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now().UTC()

	// No se aceptan turnos para días ya pasados.
	d, _ := time.Parse(DateLayout, in.PreferredDate)
	if d.Before(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)) {
		return Appointment{}, fmt.Errorf("%w: preferred_date is in the past", ErrInvalidInput)
	}

	a := Appointment{
		ID:            uuid.NewString(),
		PatientID:     patientID,
		PetName:       in.PetName,
		Reason:        in.Reason,
		PreferredDate: in.PreferredDate,
		PreferredTime: in.PreferredTime,
		Status:        StatusPending,
		CreatedAt:     now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Appointment, error) {
	return s.repo.ListByPatient(ctx, strings.TrimSpace(patientID))
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID string) ([]Appointment, error) {
	return s.repo.ListByDoctor(ctx, strings.TrimSpace(doctorID))
}
