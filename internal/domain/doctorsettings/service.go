package doctorsettings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"vet-telemedicine/internal/ports/cache"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("doctor settings not found")
)

const (
	clockLayout     = "15:04"
	cacheKeyPrefix  = "doctor_settings:"
	DefaultCacheTTL = 5 * time.Minute
)

// clockPattern exige HH:MM 24h con cero a la izquierda.
var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var weekdays = []any{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type Service struct {
	repo     Repository
	cache    cache.Cache // puede ser nil
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository, c cache.Cache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		repo:     repo,
		cache:    c,
		cacheTTL: ttl,
		now:      time.Now,
	}
}

type UpsertInput struct {
	MaxConsultationsPerDay int
	MaxAppointmentsPerDay  int
	ConsultationStartTime  string
	ConsultationEndTime    string
	AppointmentStartTime   string
	AppointmentEndTime     string
	DaysAvailable          []string
}

func (in UpsertInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.MaxConsultationsPerDay, validation.Min(0)),
		validation.Field(&in.MaxAppointmentsPerDay, validation.Min(0)),
		validation.Field(&in.ConsultationStartTime, validation.Required, validation.Match(clockPattern)),
		validation.Field(&in.ConsultationEndTime, validation.Required, validation.Match(clockPattern),
			validation.By(notBefore(in.ConsultationStartTime))),
		validation.Field(&in.AppointmentStartTime, validation.Required, validation.Match(clockPattern)),
		validation.Field(&in.AppointmentEndTime, validation.Required, validation.Match(clockPattern),
			validation.By(notBefore(in.AppointmentStartTime))),
		validation.Field(&in.DaysAvailable, validation.Each(validation.In(weekdays...))),
	)
}

// notBefore valida end >= start (ambos HH:MM).
func notBefore(start string) validation.RuleFunc {
	return func(value any) error {
		end, _ := value.(string)
		if end < start {
			return errors.New("must not be before the start time")
		}
		return nil
	}
}

// Get lee settings con read-through cache.
// Errores de cache no cortan la lectura: se cae al repo.
func (s *Service) Get(ctx context.Context, doctorID string) (Settings, error) {
	doctorID = strings.TrimSpace(doctorID)
	if doctorID == "" {
		return Settings{}, ErrInvalidInput
	}

	key := cacheKeyPrefix + doctorID
	if s.cache != nil {
		if raw, found, err := s.cache.Get(ctx, key); err == nil && found {
			var cached Settings
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	st, err := s.repo.GetByDoctor(ctx, doctorID)
	if err != nil {
		return Settings{}, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(st); err == nil {
			_ = s.cache.Set(ctx, key, raw, s.cacheTTL)
		}
	}
	return st, nil
}

func (s *Service) Upsert(ctx context.Context, doctorID string, in UpsertInput) (Settings, error) {
	doctorID = strings.TrimSpace(doctorID)
	if doctorID == "" {
		return Settings{}, ErrInvalidInput
	}

	in.ConsultationStartTime = NormalizeClock(in.ConsultationStartTime)
	in.ConsultationEndTime = NormalizeClock(in.ConsultationEndTime)
	in.AppointmentStartTime = NormalizeClock(in.AppointmentStartTime)
	in.AppointmentEndTime = NormalizeClock(in.AppointmentEndTime)
	in.DaysAvailable = normalizeDays(in.DaysAvailable)

	if err := in.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now().UTC()

	st := Settings{
		ID:                     uuid.NewString(),
		DoctorID:               doctorID,
		MaxConsultationsPerDay: in.MaxConsultationsPerDay,
		MaxAppointmentsPerDay:  in.MaxAppointmentsPerDay,
		ConsultationStartTime:  in.ConsultationStartTime,
		ConsultationEndTime:    in.ConsultationEndTime,
		AppointmentStartTime:   in.AppointmentStartTime,
		AppointmentEndTime:     in.AppointmentEndTime,
		DaysAvailable:          in.DaysAvailable,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	// Conservar identidad y fecha de alta si ya existía.
	existing, err := s.repo.GetByDoctor(ctx, doctorID)
	switch {
	case err == nil:
		st.ID = existing.ID
		st.CreatedAt = existing.CreatedAt
	case !errors.Is(err, ErrNotFound):
		return Settings{}, err
	}

	if err := s.repo.Upsert(ctx, st); err != nil {
		return Settings{}, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, cacheKeyPrefix+doctorID)
	}
	return st, nil
}

func (s *Service) List(ctx context.Context) ([]Settings, error) {
	return s.repo.List(ctx)
}

// normalizeDays: "monday " -> "Monday", sin duplicados, respetando el orden recibido.
func normalizeDays(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, raw := range in {
		d := strings.ToLower(strings.TrimSpace(raw))
		if d == "" {
			continue
		}
		d = strings.ToUpper(d[:1]) + d[1:]
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
