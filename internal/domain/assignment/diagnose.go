package assignment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"vet-telemedicine/internal/domain/consultations"
	"vet-telemedicine/internal/domain/doctorsettings"
)

// Report explica por qué una consulta está (o no) asignada.
type Report struct {
	ConsultationID string               `json:"consultation_id"`
	Status         consultations.Status `json:"status"`
	DoctorID       string               `json:"doctor_id,omitempty"`

	Success bool     `json:"success"`
	Message string   `json:"message"`
	Reasons []string `json:"reasons"` // un motivo por médico no elegible

	Urgency Urgency `json:"urgency"`

	// AssignmentAttempted es true cuando el reporte corrió una asignación real (escribe en el store).
	AssignmentAttempted bool `json:"assignment_attempted"`
}

// Explain es de solo lectura: evalúa cada médico con settings y junta los motivos
// por los que no puede tomar la consulta ahora.
func (s *Service) Explain(ctx context.Context, consultationID string) (Report, error) {
	c, err := s.loadConsultation(ctx, consultationID)
	if err != nil {
		return Report{}, err
	}

	now := s.now()
	rep := newReport(c, now)

	if c.IsAssigned() {
		rep.Success = true
		rep.Message = fmt.Sprintf("Consultation is already assigned to doctor %s", *c.DoctorID)
		return rep, nil
	}
	if c.Status != consultations.StatusPending {
		rep.Message = fmt.Sprintf("Consultation status is %s, not pending", c.Status)
		return rep, nil
	}

	all, err := s.settings.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list doctor settings: %w", err)
	}
	if len(all) == 0 {
		rep.Message = "No doctor can take this consultation right now"
		rep.Reasons = append(rep.Reasons, "No doctors have configured their availability settings")
		return rep, nil
	}

	reasons := s.collectReasons(ctx, all, now)
	rep.Reasons = append(rep.Reasons, reasons...)

	eligible := len(all) - len(reasons)
	if eligible == 0 {
		rep.Message = "No doctor can take this consultation right now"
		return rep, nil
	}

	rep.Message = fmt.Sprintf("%d doctor(s) can take this consultation; it is waiting for the next assignment run", eligible)
	// Reasons es solo por médico; la posición en la cola va en el mensaje.
	if ahead, err := s.queuePosition(ctx, c.ID); err == nil && ahead > 0 {
		rep.Message += fmt.Sprintf(" (%d older pending consultation(s) are ahead in the queue)", ahead)
	}
	return rep, nil
}

// RetryAssign corre AssignAllPending una vez y vuelve a leer la consulta. Escribe en el store.
func (s *Service) RetryAssign(ctx context.Context, consultationID string) (Report, error) {
	if _, err := s.loadConsultation(ctx, consultationID); err != nil {
		return Report{}, err
	}

	res, err := s.AssignAllPending(ctx)
	if err != nil {
		return Report{}, err
	}

	c, err := s.loadConsultation(ctx, consultationID)
	if err != nil {
		return Report{}, err
	}

	rep := newReport(c, s.now())
	rep.AssignmentAttempted = true

	if c.IsAssigned() {
		rep.Success = true
		rep.Message = fmt.Sprintf("Consultation was assigned to doctor %s", *c.DoctorID)
		return rep, nil
	}
	rep.Message = fmt.Sprintf("Consultation is still %s (this run assigned %d consultations and %d appointments)",
		c.Status, res.Consultations, res.Appointments)
	return rep, nil
}

// Diagnose = Explain + RetryAssign. No es de solo lectura: si la consulta está
// pendiente dispara una asignación real y lo marca en AssignmentAttempted.
// Si después de la corrida quedó asignada, reporta éxito aunque hubiera motivos.
func (s *Service) Diagnose(ctx context.Context, consultationID string) (Report, error) {
	rep, err := s.Explain(ctx, consultationID)
	if err != nil {
		return Report{}, err
	}
	if rep.Success || rep.Status != consultations.StatusPending {
		return rep, nil
	}

	retry, err := s.RetryAssign(ctx, consultationID)
	rep.AssignmentAttempted = true
	if err != nil {
		if errors.Is(err, ErrConsultationNotFound) {
			return Report{}, err
		}
		s.log.Error("diagnose retry failed", map[string]any{"consultation_id": consultationID, "error": err})
		rep.Message = "Assignment retry failed: " + err.Error()
		return rep, nil
	}

	if retry.Success {
		retry.Urgency = rep.Urgency
		return retry, nil
	}
	rep.Message = retry.Message
	return rep, nil
}

func (s *Service) loadConsultation(ctx context.Context, id string) (consultations.Consultation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return consultations.Consultation{}, ErrInvalidInput
	}
	c, err := s.consultations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, consultations.ErrNotFound) {
			return consultations.Consultation{}, ErrConsultationNotFound
		}
		return consultations.Consultation{}, fmt.Errorf("load consultation: %w", err)
	}
	return c, nil
}

// collectReasons evalúa los médicos en paralelo (acotado) y conserva el orden de la lista.
func (s *Service) collectReasons(ctx context.Context, all []doctorsettings.Settings, now time.Time) []string {
	slots := make([]string, len(all))

	var g errgroup.Group
	g.SetLimit(s.opts.ExplainConcurrency)
	for i, st := range all {
		i, st := i, st
		g.Go(func() error {
			slots[i] = s.ineligibility(ctx, st, now)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]string, 0, len(all))
	for _, r := range slots {
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// ineligibility devuelve "" si el médico podría tomar la consulta ahora.
func (s *Service) ineligibility(ctx context.Context, st doctorsettings.Settings, now time.Time) string {
	local := now.In(s.opts.Location)
	problems := make([]string, 0, 2)

	switch {
	case !st.AvailableOn(local.Weekday()):
		days := "none"
		if len(st.DaysAvailable) > 0 {
			days = strings.Join(st.DaysAvailable, ", ")
		}
		problems = append(problems, fmt.Sprintf("not available on %s (available: %s)", local.Weekday(), days))
	case !IsAvailable(st, local, KindConsultation):
		problems = append(problems, fmt.Sprintf("outside consultation hours %s-%s (now %s)",
			doctorsettings.NormalizeClock(st.ConsultationStartTime),
			doctorsettings.NormalizeClock(st.ConsultationEndTime),
			local.Format(clockLayout)))
	}

	from, to := DayBounds(now)
	count, err := s.consultations.CountAssignedBetween(ctx, st.DoctorID, from, to)
	switch {
	case err != nil:
		problems = append(problems, fmt.Sprintf("could not check today's capacity: %v", err))
	case RemainingSlots(st.MaxConsultationsPerDay, count) == 0:
		problems = append(problems, fmt.Sprintf("daily consultation limit reached (%d/%d)", count, st.MaxConsultationsPerDay))
	}

	if len(problems) == 0 {
		return ""
	}
	return fmt.Sprintf("Doctor %s: %s", st.DoctorID, strings.Join(problems, "; "))
}

// queuePosition cuenta cuántas consultas pendientes más viejas hay delante.
func (s *Service) queuePosition(ctx context.Context, id string) (int, error) {
	pending, err := s.consultations.ListPending(ctx, 0)
	if err != nil {
		return 0, err
	}
	for i, c := range pending {
		if c.ID == id {
			return i, nil
		}
	}
	return 0, nil
}

func newReport(c consultations.Consultation, now time.Time) Report {
	rep := Report{
		ConsultationID: c.ID,
		Status:         c.Status,
		Reasons:        []string{},
		Urgency:        ClassifyUrgency(c.Symptoms, c.CreatedAt, now),
	}
	if c.IsAssigned() {
		rep.DoctorID = *c.DoctorID
	}
	return rep
}
