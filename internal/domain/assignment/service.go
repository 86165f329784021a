package assignment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-telemedicine/internal/domain/appointments"
	"vet-telemedicine/internal/domain/consultations"
	"vet-telemedicine/internal/domain/doctorsettings"
	"vet-telemedicine/internal/platform/logger"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrSettingsNotFound     = errors.New("doctor settings not found")
	ErrConsultationNotFound = errors.New("consultation not found")
)

// Mensajes que ve el paciente después de crear una solicitud.
const (
	MsgAssigned        = "Successfully assigned to an available doctor."
	MsgNoneAvailable   = "No available doctors at the moment. An admin will review and assign soon."
	MsgAssignFailed    = "Failed to assign to doctor. It will be reviewed by admin."
	MsgAutoAssignOff   = "Pending admin review for assignment."
	msgNothingToAssign = "No new assignments needed"
)

// SettingsProvider es lo que el orquestador necesita de doctorsettings.
// *doctorsettings.Service lo implementa (con cache).
type SettingsProvider interface {
	Get(ctx context.Context, doctorID string) (doctorsettings.Settings, error)
	List(ctx context.Context) ([]doctorsettings.Settings, error)
}

type Options struct {
	// Zona horaria para evaluar día de la semana y hora (default UTC).
	// El conteo diario de consultas siempre usa el día UTC.
	Location *time.Location

	// RecheckAvailability: además del orquestador, cada allocator vuelve a evaluar IsAvailable.
	RecheckAvailability bool

	// AutoAssignEnabled controla la asignación oportunista al crear solicitudes.
	AutoAssignEnabled bool

	// ExplainConcurrency limita las evaluaciones por médico en Explain (default 4).
	ExplainConcurrency int
}

// Result resume una corrida.
type Result struct {
	Consultations int    `json:"consultations"`
	Appointments  int    `json:"appointments"`
	Message       string `json:"message"`
}

func (r Result) Total() int { return r.Consultations + r.Appointments }

func (r *Result) add(o Result) {
	r.Consultations += o.Consultations
	r.Appointments += o.Appointments
}

// Service orquesta los allocators. No usa locks: la exclusión la da el
// compare-and-swap de cada repositorio, así que se puede invocar en paralelo
// desde varios procesos.
type Service struct {
	settings      SettingsProvider
	consultations consultations.Repository
	appointments  appointments.Repository

	consultAlloc *ConsultationAllocator
	apptAlloc    *AppointmentAllocator

	log  logger.Logger
	opts Options
	now  func() time.Time
}

func NewService(
	settings SettingsProvider,
	consultRepo consultations.Repository,
	apptRepo appointments.Repository,
	log logger.Logger,
	opts Options,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.ExplainConcurrency <= 0 {
		opts.ExplainConcurrency = 4
	}

	s := &Service{
		settings:      settings,
		consultations: consultRepo,
		appointments:  apptRepo,
		log:           log.With(map[string]any{"component": "assignment"}),
		opts:          opts,
		now:           time.Now,
	}

	// Los allocators leen el reloj del service (los tests lo reemplazan).
	clock := func() time.Time { return s.now() }

	s.consultAlloc = NewConsultationAllocator(consultRepo, s.log)
	s.consultAlloc.now = clock
	s.consultAlloc.loc = opts.Location
	s.consultAlloc.recheck = opts.RecheckAvailability

	s.apptAlloc = NewAppointmentAllocator(apptRepo, s.log)
	s.apptAlloc.now = clock
	s.apptAlloc.loc = opts.Location
	s.apptAlloc.recheck = opts.RecheckAvailability

	return s
}

// AssignForDoctor corre ambos allocators para un médico (carga del dashboard).
func (s *Service) AssignForDoctor(ctx context.Context, doctorID string) (Result, error) {
	doctorID = strings.TrimSpace(doctorID)
	if doctorID == "" {
		return Result{}, ErrInvalidInput
	}

	st, err := s.settings.Get(ctx, doctorID)
	if err != nil {
		if errors.Is(err, doctorsettings.ErrNotFound) {
			return Result{}, ErrSettingsNotFound
		}
		return Result{}, fmt.Errorf("load doctor settings: %w", err)
	}

	res, err := s.assignDoctor(ctx, st)
	res.Message = summary(res)
	return res, err
}

// AssignAllPending recorre todos los médicos con settings en el orden natural del store.
// Los primeros pueden agotar el trabajo pendiente antes de llegar a los últimos; es aceptado.
func (s *Service) AssignAllPending(ctx context.Context) (Result, error) {
	all, err := s.settings.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list doctor settings: %w", err)
	}

	var total Result
	for _, st := range all {
		res, err := s.assignDoctor(ctx, st)
		total.add(res)
		if err != nil {
			total.Message = summary(total)
			return total, err
		}
	}

	total.Message = summary(total)
	s.log.Info("bulk assignment finished", map[string]any{
		"doctors":       len(all),
		"consultations": total.Consultations,
		"appointments":  total.Appointments,
	})
	return total, nil
}

// AssignAfterCreate es el disparo oportunista después de crear una consulta o turno.
// Nunca falla: devuelve el mensaje para el paciente.
func (s *Service) AssignAfterCreate(ctx context.Context) string {
	if !s.opts.AutoAssignEnabled {
		return MsgAutoAssignOff
	}

	res, err := s.AssignAllPending(ctx)
	if err != nil {
		s.log.Error("opportunistic assignment failed", map[string]any{"error": err})
		return MsgAssignFailed
	}
	if res.Total() > 0 {
		return MsgAssigned
	}
	return MsgNoneAvailable
}

// assignDoctor solo devuelve error si se canceló el contexto.
// Errores del store se loguean y la corrida sigue (conteo best-effort).
func (s *Service) assignDoctor(ctx context.Context, st doctorsettings.Settings) (Result, error) {
	log := s.log.With(map[string]any{"doctor_id": st.DoctorID})
	now := s.now().In(s.opts.Location)

	var res Result

	if IsAvailable(st, now, KindConsultation) {
		n, err := s.consultAlloc.Assign(ctx, st.DoctorID, st)
		res.Consultations = n
		if err != nil {
			if isCtxErr(err) {
				return res, err
			}
			log.Error("consultation assignment failed", map[string]any{"error": err})
		}
	} else {
		log.Debug("skipping consultations: doctor not available now", map[string]any{
			"weekday": now.Weekday().String(),
			"time":    now.Format(clockLayout),
		})
	}

	n, err := s.apptAlloc.Assign(ctx, st.DoctorID, st)
	res.Appointments = n
	if err != nil {
		if isCtxErr(err) {
			return res, err
		}
		log.Error("appointment assignment failed", map[string]any{"error": err})
	}

	return res, nil
}

func summary(r Result) string {
	if r.Total() == 0 {
		return msgNothingToAssign
	}
	return fmt.Sprintf("Auto-assigned %d consultations and %d appointments", r.Consultations, r.Appointments)
}

func isCtxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
