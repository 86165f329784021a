package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"vet-telemedicine/internal/domain/consultations"
)

type consultationRepo struct {
	mu   sync.RWMutex
	byID map[string]consultations.Consultation
}

func NewConsultationRepo() consultations.Repository {
	return &consultationRepo{
		byID: make(map[string]consultations.Consultation),
	}
}

func (r *consultationRepo) Create(ctx context.Context, c consultations.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		return errors.New("consultation id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return ErrDuplicateID
	}
	r.byID[c.ID] = cloneConsultation(c)
	return nil
}

func (r *consultationRepo) GetByID(ctx context.Context, id string) (consultations.Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return consultations.Consultation{}, consultations.ErrNotFound
	}
	return cloneConsultation(c), nil
}

func (r *consultationRepo) ListByPatient(ctx context.Context, patientID string) ([]consultations.Consultation, error) {
	return r.filter(func(c consultations.Consultation) bool { return c.PatientID == patientID }, 0), nil
}

func (r *consultationRepo) ListByDoctor(ctx context.Context, doctorID string) ([]consultations.Consultation, error) {
	return r.filter(func(c consultations.Consultation) bool {
		return c.IsAssigned() && *c.DoctorID == doctorID
	}, 0), nil
}

func (r *consultationRepo) ListPending(ctx context.Context, limit int) ([]consultations.Consultation, error) {
	return r.filter(func(c consultations.Consultation) bool {
		return !c.IsAssigned() && c.Status == consultations.StatusPending
	}, limit), nil
}

func (r *consultationRepo) CountAssignedBetween(ctx context.Context, doctorID string, from, to time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, c := range r.byID {
		if !c.IsAssigned() || *c.DoctorID != doctorID || c.AssignedAt == nil {
			continue
		}
		if c.AssignedAt.Before(from) || c.AssignedAt.After(to) {
			continue
		}
		n++
	}
	return n, nil
}

// Assign es el compare-and-swap: el lock de escritura cubre la lectura y la escritura.
func (r *consultationRepo) Assign(ctx context.Context, id, doctorID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return false, consultations.ErrNotFound
	}
	if c.IsAssigned() || c.Status != consultations.StatusPending {
		return false, nil
	}

	d := doctorID
	t := at
	c.DoctorID = &d
	c.AssignedAt = &t
	c.Status = consultations.StatusInProgress
	r.byID[id] = c
	return true, nil
}

func (r *consultationRepo) Complete(ctx context.Context, id, doctorID, prescription string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return consultations.ErrNotFound
	}
	if !c.IsAssigned() || *c.DoctorID != doctorID {
		return consultations.ErrForbidden
	}

	p := prescription
	c.Prescription = &p
	c.Status = consultations.StatusCompleted
	r.byID[id] = c
	return nil
}

// filter devuelve copias ordenadas por CreatedAt asc (desempate por ID).
func (r *consultationRepo) filter(keep func(consultations.Consultation) bool, limit int) []consultations.Consultation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]consultations.Consultation, 0)
	for _, c := range r.byID {
		if keep(c) {
			out = append(out, cloneConsultation(c))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func cloneConsultation(c consultations.Consultation) consultations.Consultation {
	if c.DoctorID != nil {
		d := *c.DoctorID
		c.DoctorID = &d
	}
	if c.AssignedAt != nil {
		t := *c.AssignedAt
		c.AssignedAt = &t
	}
	if c.Prescription != nil {
		p := *c.Prescription
		c.Prescription = &p
	}
	if c.Attachments != nil {
		c.Attachments = append([]string(nil), c.Attachments...)
	}
	return c
}
