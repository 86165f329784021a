package memory

import (
	"context"
	"errors"
	"sync"

	"vet-telemedicine/internal/domain/doctorsettings"
)

// settingsRepo guarda el orden de alta para que List sea estable (orden natural del store).
type settingsRepo struct {
	mu       sync.RWMutex
	byDoctor map[string]doctorsettings.Settings
	order    []string
}

func NewDoctorSettingsRepo() doctorsettings.Repository {
	return &settingsRepo{
		byDoctor: make(map[string]doctorsettings.Settings),
	}
}

func (r *settingsRepo) Upsert(ctx context.Context, s doctorsettings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.DoctorID == "" {
		return errors.New("doctor id required")
	}
	if _, exists := r.byDoctor[s.DoctorID]; !exists {
		r.order = append(r.order, s.DoctorID)
	}
	s.DaysAvailable = append([]string(nil), s.DaysAvailable...)
	r.byDoctor[s.DoctorID] = s
	return nil
}

func (r *settingsRepo) GetByDoctor(ctx context.Context, doctorID string) (doctorsettings.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byDoctor[doctorID]
	if !ok {
		return doctorsettings.Settings{}, doctorsettings.ErrNotFound
	}
	s.DaysAvailable = append([]string(nil), s.DaysAvailable...)
	return s, nil
}

func (r *settingsRepo) List(ctx context.Context) ([]doctorsettings.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]doctorsettings.Settings, 0, len(r.order))
	for _, id := range r.order {
		s := r.byDoctor[id]
		s.DaysAvailable = append([]string(nil), s.DaysAvailable...)
		out = append(out, s)
	}
	return out, nil
}
