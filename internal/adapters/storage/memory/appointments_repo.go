package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"vet-telemedicine/internal/domain/appointments"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return ErrDuplicateID
	}
	r.byID[a.ID] = cloneAppointment(a)
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return cloneAppointment(a), nil
}

func (r *appointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *appointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool {
		return a.IsAssigned() && *a.DoctorID == doctorID
	}), nil
}

func (r *appointmentRepo) ListPending(ctx context.Context) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool {
		return !a.IsAssigned() && a.Status == appointments.StatusPending
	}), nil
}

// CountByDoctorAndDate cuenta todos los turnos del médico para la fecha, sin mirar el status.
func (r *appointmentRepo) CountByDoctorAndDate(ctx context.Context, doctorID, date string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.byID {
		if a.IsAssigned() && *a.DoctorID == doctorID && a.PreferredDate == date {
			n++
		}
	}
	return n, nil
}

func (r *appointmentRepo) Assign(ctx context.Context, id, doctorID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return false, appointments.ErrNotFound
	}
	if a.IsAssigned() || a.Status != appointments.StatusPending {
		return false, nil
	}

	d := doctorID
	t := at
	a.DoctorID = &d
	a.AssignedAt = &t
	a.Status = appointments.StatusConfirmed
	r.byID[id] = a
	return true, nil
}

func (r *appointmentRepo) filter(keep func(appointments.Appointment) bool) []appointments.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, cloneAppointment(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func cloneAppointment(a appointments.Appointment) appointments.Appointment {
	if a.DoctorID != nil {
		d := *a.DoctorID
		a.DoctorID = &d
	}
	if a.AssignedAt != nil {
		t := *a.AssignedAt
		a.AssignedAt = &t
	}
	if a.Prescription != nil {
		p := *a.Prescription
		a.Prescription = &p
	}
	return a
}
