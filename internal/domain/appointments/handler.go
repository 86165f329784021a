package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vet-telemedicine/internal/middleware"
	"vet-telemedicine/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// Assigner dispara la asignación oportunista después de crear (evita importar assignment).
type Assigner interface {
	AssignAfterCreate(ctx context.Context) string
}

func RegisterRoutes(r chi.Router, svc *Service, assigner Assigner) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.With(middleware.RequireRole(auth.RolePatient)).Post("/", createAppointmentHandler(svc, assigner))
		ar.Get("/{id}", getAppointmentHandler(svc))
	})

	r.Get("/me/appointments", listMyAppointmentsHandler(svc))
}

type createAppointmentRequest struct {
	PetName       string `json:"pet_name"`
	Reason        string `json:"reason"`
	PreferredDate string `json:"preferred_date"` // YYYY-MM-DD
	PreferredTime string `json:"preferred_time"` // HH:MM
}

type appointmentResponse struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patient_id"`
	PetName       string     `json:"pet_name"`
	Reason        string     `json:"reason"`
	PreferredDate string     `json:"preferred_date"`
	PreferredTime string     `json:"preferred_time"`
	Status        Status     `json:"status"`
	DoctorID      *string    `json:"doctor_id,omitempty"`
	AssignedAt    *time.Time `json:"assigned_at,omitempty"`
	Prescription  *string    `json:"prescription,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type createAppointmentResponse struct {
	Appointment appointmentResponse `json:"appointment"`
	Assignment  string              `json:"assignment"`
}

// createAppointmentHandler godoc
// @Summary Pedir turno
// @Description Crea un turno pendiente para una fecha (YYYY-MM-DD) y hora (HH:MM) y dispara la asignación oportunista.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param X-Debug-Role header string false "Solo en modo dev: patient, doctor o admin"
// @Param payload body createAppointmentRequest true "Datos del turno"
// @Success 201 {object} createAppointmentResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service, assigner Assigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			PetName:       req.PetName,
			Reason:        req.Reason,
			PreferredDate: req.PreferredDate,
			PreferredTime: req.PreferredTime,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		msg := ""
		if assigner != nil {
			msg = assigner.AssignAfterCreate(r.Context())
			if fresh, err := svc.GetByID(r.Context(), a.ID); err == nil {
				a = fresh
			}
		}

		writeJSON(w, http.StatusCreated, createAppointmentResponse{
			Appointment: toAppointmentResponse(a),
			Assignment:  msg,
		})
	}
}

// getAppointmentHandler godoc
// @Summary Ver turno
// @Tags appointments
// @Produce json
// @Param id path string true "ID del turno"
// @Success 200 {object} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /appointments/{id} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		allowed := claims.Role == auth.RoleAdmin ||
			a.PatientID == claims.UserID ||
			(a.IsAssigned() && *a.DoctorID == claims.UserID)
		if !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// listMyAppointmentsHandler godoc
// @Summary Mis turnos
// @Description Paciente: sus turnos. Médico: los turnos asignados a él.
// @Tags appointments
// @Produce json
// @Success 200 {array} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/appointments [get]
func listMyAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			items []Appointment
			err   error
		)
		if claims.Role == auth.RoleDoctor {
			items, err = svc.ListByDoctor(r.Context(), claims.UserID)
		} else {
			items, err = svc.ListByPatient(r.Context(), claims.UserID)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:            a.ID,
		PatientID:     a.PatientID,
		PetName:       a.PetName,
		Reason:        a.Reason,
		PreferredDate: a.PreferredDate,
		PreferredTime: a.PreferredTime,
		Status:        a.Status,
		DoctorID:      a.DoctorID,
		AssignedAt:    a.AssignedAt,
		Prescription:  a.Prescription,
		CreatedAt:     a.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
