package assignment

import (
	"context"
	"fmt"
	"time"

	"vet-telemedicine/internal/domain/appointments"
	"vet-telemedicine/internal/domain/doctorsettings"
	"vet-telemedicine/internal/platform/logger"
)

// AppointmentAllocator asigna turnos pendientes cuyo horario pedido cae
// dentro de la franja del médico, respetando el cupo por fecha del turno.
type AppointmentAllocator struct {
	repo appointments.Repository
	log  logger.Logger
	now  func() time.Time
	loc  *time.Location

	recheck bool
}

func NewAppointmentAllocator(repo appointments.Repository, log logger.Logger) *AppointmentAllocator {
	if log == nil {
		log = logger.Nop()
	}
	return &AppointmentAllocator{
		repo: repo,
		log:  log,
		now:  time.Now,
		loc:  time.UTC,
	}
}

// Assign recorre todos los turnos pendientes (más viejos primero).
// No hay tope global: cada fecha tiene su propio cupo, así que un médico
// puede recibir turnos de muchas fechas en una sola pasada.
func (a *AppointmentAllocator) Assign(ctx context.Context, doctorID string, st doctorsettings.Settings) (int, error) {
	log := a.log.With(map[string]any{"doctor_id": doctorID, "kind": string(KindAppointment)})

	if a.recheck && !IsAvailable(st, a.now().In(a.loc), KindAppointment) {
		log.Debug("doctor not available for appointments", nil)
		return 0, nil
	}

	pending, err := a.repo.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending appointments: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	assigned := 0
	for _, ap := range pending {
		if err := ctx.Err(); err != nil {
			return assigned, err
		}

		fields := map[string]any{
			"appointment_id": ap.ID,
			"date":           ap.PreferredDate,
			"time":           ap.PreferredTime,
		}

		// El horario pedido tiene que caer en la franja del médico, sin importar la hora actual.
		if !WithinWindow(ap.PreferredTime, st.AppointmentStartTime, st.AppointmentEndTime) {
			log.Debug("appointment outside doctor's hours", fields)
			continue
		}

		n, err := a.repo.CountByDoctorAndDate(ctx, doctorID, ap.PreferredDate)
		if err != nil {
			fields["error"] = err
			log.Warn("count appointments for date failed", fields)
			continue
		}
		if n >= st.MaxAppointmentsPerDay {
			log.Debug("appointment limit reached for date", fields)
			continue
		}

		ok, err := a.repo.Assign(ctx, ap.ID, doctorID, a.now().UTC())
		switch {
		case err != nil:
			fields["error"] = err
			log.Warn("assign appointment failed", fields)
		case !ok:
			log.Debug("appointment already taken", fields)
		default:
			assigned++
		}
	}

	log.Info("appointments assigned", map[string]any{
		"assigned": assigned,
		"fetched":  len(pending),
	})
	return assigned, nil
}
