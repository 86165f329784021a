package assignment

import (
	"encoding/json"
	"errors"
	"net/http"

	"vet-telemedicine/internal/middleware"
	"vet-telemedicine/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta los endpoints que disparan o explican corridas.
// limit puede ser nil; se aplica solo a los endpoints que escriben.
func RegisterRoutes(r chi.Router, svc *Service, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.With(middleware.RequireRole(auth.RoleDoctor), limit).
		Post("/doctors/me/assign", assignForMeHandler(svc))

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireRole(auth.RoleAdmin))
		ar.With(limit).Post("/assign", assignAllHandler(svc))
		ar.Get("/consultations/{id}/explain", explainHandler(svc))
		ar.With(limit).Post("/consultations/{id}/diagnose", diagnoseHandler(svc))
	})
}

type resultResponse struct {
	Consultations int    `json:"consultations"`
	Appointments  int    `json:"appointments"`
	Message       string `json:"message"`
}

type reportResponse struct {
	ConsultationID      string   `json:"consultation_id"`
	Status              string   `json:"status"`
	DoctorID            string   `json:"doctor_id,omitempty"`
	Success             bool     `json:"success"`
	Message             string   `json:"message"`
	Reasons             []string `json:"reasons"`
	Urgency             Urgency  `json:"urgency"`
	AssignmentAttempted bool     `json:"assignment_attempted"`
}

// assignForMeHandler godoc
// @Summary Asignar trabajo pendiente al médico
// @Description Corre ambos allocators para el médico autenticado (lo llama el dashboard al cargar). Las consultas solo se asignan si el médico está disponible ahora.
// @Tags assignment
// @Produce json
// @Success 200 {object} resultResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "doctor settings not found"
// @Failure 429 {string} string "too many requests"
// @Router /doctors/me/assign [post]
func assignForMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		res, err := svc.AssignForDoctor(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResultResponse(res))
	}
}

// assignAllHandler godoc
// @Summary Asignación masiva
// @Description Recorre todos los médicos con configuración y asigna consultas y turnos pendientes.
// @Tags admin
// @Produce json
// @Success 200 {object} resultResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 429 {string} string "too many requests"
// @Router /admin/assign [post]
func assignAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.AssignAllPending(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResultResponse(res))
	}
}

// explainHandler godoc
// @Summary Explicar asignación de una consulta
// @Description Solo lectura. Devuelve por qué cada médico no puede tomar la consulta ahora.
// @Tags admin
// @Produce json
// @Param id path string true "ID de la consulta"
// @Success 200 {object} reportResponse
// @Failure 404 {string} string "consultation not found"
// @Router /admin/consultations/{id}/explain [get]
func explainHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Explain(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponse(rep))
	}
}

// diagnoseHandler godoc
// @Summary Diagnosticar y reintentar
// @Description Explica y, si la consulta sigue pendiente, corre una asignación masiva real. `assignment_attempted` indica que hubo escrituras.
// @Tags admin
// @Produce json
// @Param id path string true "ID de la consulta"
// @Success 200 {object} reportResponse
// @Failure 404 {string} string "consultation not found"
// @Failure 429 {string} string "too many requests"
// @Router /admin/consultations/{id}/diagnose [post]
func diagnoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Diagnose(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponse(rep))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrSettingsNotFound), errors.Is(err, ErrConsultationNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toResultResponse(r Result) resultResponse {
	return resultResponse{
		Consultations: r.Consultations,
		Appointments:  r.Appointments,
		Message:       r.Message,
	}
}

func toReportResponse(r Report) reportResponse {
	reasons := r.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return reportResponse{
		ConsultationID:      r.ConsultationID,
		Status:              string(r.Status),
		DoctorID:            r.DoctorID,
		Success:             r.Success,
		Message:             r.Message,
		Reasons:             reasons,
		Urgency:             r.Urgency,
		AssignmentAttempted: r.AssignmentAttempted,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
