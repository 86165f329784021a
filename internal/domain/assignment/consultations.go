package assignment

import (
	"context"
	"fmt"
	"time"

	"vet-telemedicine/internal/domain/consultations"
	"vet-telemedicine/internal/domain/doctorsettings"
	"vet-telemedicine/internal/platform/logger"
)

// ConsultationAllocator asigna consultas pendientes (las más viejas primero)
// a un médico hasta completar su cupo diario.
type ConsultationAllocator struct {
	repo consultations.Repository
	log  logger.Logger
	now  func() time.Time
	loc  *time.Location

	// recheck: vuelve a evaluar IsAvailable acá adentro además del orquestador.
	recheck bool
}

func NewConsultationAllocator(repo consultations.Repository, log logger.Logger) *ConsultationAllocator {
	if log == nil {
		log = logger.Nop()
	}
	return &ConsultationAllocator{
		repo: repo,
		log:  log,
		now:  time.Now,
		loc:  time.UTC,
	}
}

// Assign devuelve cuántas consultas quedaron asignadas a doctorID.
// Cupo agotado no es error: devuelve 0.
// Un error al contar o listar se devuelve; fallas sobre una fila puntual se loguean y se saltan.
func (a *ConsultationAllocator) Assign(ctx context.Context, doctorID string, st doctorsettings.Settings) (int, error) {
	log := a.log.With(map[string]any{"doctor_id": doctorID, "kind": string(KindConsultation)})

	now := a.now()
	if a.recheck && !IsAvailable(st, now.In(a.loc), KindConsultation) {
		log.Debug("doctor not available for consultations", nil)
		return 0, nil
	}

	from, to := DayBounds(now)
	current, err := a.repo.CountAssignedBetween(ctx, doctorID, from, to)
	if err != nil {
		return 0, fmt.Errorf("count today's consultations: %w", err)
	}

	slots := st.MaxConsultationsPerDay - current
	if slots <= 0 {
		log.Debug("daily consultation limit reached", map[string]any{
			"current": current,
			"max":     st.MaxConsultationsPerDay,
		})
		return 0, nil
	}

	pending, err := a.repo.ListPending(ctx, slots)
	if err != nil {
		return 0, fmt.Errorf("list pending consultations: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	assigned := 0
	for _, c := range pending {
		if err := ctx.Err(); err != nil {
			return assigned, err
		}

		ok, err := a.repo.Assign(ctx, c.ID, doctorID, a.now().UTC())
		switch {
		case err != nil:
			log.Warn("assign consultation failed", map[string]any{"consultation_id": c.ID, "error": err})
		case !ok:
			// Otro proceso la tomó primero.
			log.Debug("consultation already taken", map[string]any{"consultation_id": c.ID})
		default:
			assigned++
		}
	}

	log.Info("consultations assigned", map[string]any{
		"assigned": assigned,
		"slots":    slots,
		"fetched":  len(pending),
	})
	return assigned, nil
}
