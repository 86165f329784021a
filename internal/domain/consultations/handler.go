package consultations

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
	r.Route("/consultations", func(cr chi.Router) {
		cr.With(middleware.RequireRole(auth.RolePatient)).Post("/", createConsultationHandler(svc, assigner))
		cr.Get("/{id}", getConsultationHandler(svc))
		cr.With(middleware.RequireRole(auth.RoleDoctor)).Post("/{id}/complete", completeConsultationHandler(svc))
	})

	r.Get("/me/consultations", listMyConsultationsHandler(svc))
}

type createConsultationRequest struct {
	PetName     string   `json:"pet_name"`
	Symptoms    string   `json:"symptoms"`
	Attachments []string `json:"attachments"`
}

type completeConsultationRequest struct {
	Prescription string `json:"prescription"`
}

type consultationResponse struct {
	ID           string     `json:"id"`
	PatientID    string     `json:"patient_id"`
	PetName      string     `json:"pet_name"`
	Symptoms     string     `json:"symptoms"`
	Status       Status     `json:"status"`
	DoctorID     *string    `json:"doctor_id,omitempty"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	Prescription *string    `json:"prescription,omitempty"`
	Attachments  []string   `json:"attachments"`
	CreatedAt    time.Time  `json:"created_at"`
}

type createConsultationResponse struct {
	Consultation consultationResponse `json:"consultation"`
	Assignment   string               `json:"assignment"`
}

// createConsultationHandler godoc
// @Summary Crear consulta
// @Description Crea una consulta pendiente para el paciente autenticado y dispara la asignación oportunista. El campo `assignment` trae el mensaje para el paciente. Autenticación: `X-Debug-User-ID` + `X-Debug-Role` (dev) o `Authorization: Bearer <token>`.
// @Tags consultations
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param X-Debug-Role header string false "Solo en modo dev: patient, doctor o admin"
// @Param payload body createConsultationRequest true "Datos de la consulta"
// @Success 201 {object} createConsultationResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /consultations [post]
func createConsultationHandler(svc *Service, assigner Assigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createConsultationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			PetName:     req.PetName,
			Symptoms:    req.Symptoms,
			Attachments: req.Attachments,
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
			// Releer: la corrida pudo haberla asignado.
			if fresh, err := svc.GetByID(r.Context(), c.ID); err == nil {
				c = fresh
			}
		}

		writeJSON(w, http.StatusCreated, createConsultationResponse{
			Consultation: toConsultationResponse(c),
			Assignment:   msg,
		})
	}
}

// getConsultationHandler godoc
// @Summary Ver consulta
// @Description Devuelve una consulta. Pueden verla el paciente dueño, el médico asignado o un admin.
// @Tags consultations
// @Produce json
// @Param id path string true "ID de la consulta"
// @Success 200 {object} consultationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /consultations/{id} [get]
func getConsultationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !canView(claims, c) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toConsultationResponse(c))
	}
}

// listMyConsultationsHandler godoc
// @Summary Mis consultas
// @Description Paciente: sus consultas. Médico: las consultas asignadas a él.
// @Tags consultations
// @Produce json
// @Success 200 {array} consultationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /me/consultations [get]
func listMyConsultationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			items []Consultation
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

		out := make([]consultationResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toConsultationResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// completeConsultationHandler godoc
// @Summary Completar consulta
// @Description El médico asignado registra la receta y cierra la consulta.
// @Tags consultations
// @Accept json
// @Produce json
// @Param id path string true "ID de la consulta"
// @Param payload body completeConsultationRequest true "Receta"
// @Success 200 {object} consultationResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "invalid state"
// @Router /consultations/{id}/complete [post]
func completeConsultationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req completeConsultationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Complete(r.Context(), chi.URLParam(r, "id"), claims.UserID, req.Prescription)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toConsultationResponse(c))
	}
}

func canView(claims auth.Claims, c Consultation) bool {
	switch {
	case claims.Role == auth.RoleAdmin:
		return true
	case c.PatientID == claims.UserID:
		return true
	case c.IsAssigned() && *c.DoctorID == claims.UserID:
		return true
	default:
		return false
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrBadState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toConsultationResponse(c Consultation) consultationResponse {
	attachments := c.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return consultationResponse{
		ID:           c.ID,
		PatientID:    c.PatientID,
		PetName:      c.PetName,
		Symptoms:     c.Symptoms,
		Status:       c.Status,
		DoctorID:     c.DoctorID,
		AssignedAt:   c.AssignedAt,
		Prescription: c.Prescription,
		Attachments:  attachments,
		CreatedAt:    c.CreatedAt,
	}
}

// writeJSON está duplicado en cada módulo; todavía no justifica un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
