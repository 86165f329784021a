package doctorsettings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vet-telemedicine/internal/middleware"
	"vet-telemedicine/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/doctors/me/settings", func(sr chi.Router) {
		sr.Use(middleware.RequireRole(auth.RoleDoctor))
		sr.Get("/", getMySettingsHandler(svc))
		sr.Put("/", putMySettingsHandler(svc))
	})
}

type settingsRequest struct {
	MaxConsultationsPerDay int      `json:"max_consultations_per_day"`
	MaxAppointmentsPerDay  int      `json:"max_appointments_per_day"`
	ConsultationStartTime  string   `json:"consultation_start_time"`
	ConsultationEndTime    string   `json:"consultation_end_time"`
	AppointmentStartTime   string   `json:"appointment_start_time"`
	AppointmentEndTime     string   `json:"appointment_end_time"`
	DaysAvailable          []string `json:"days_available"`
}

type settingsResponse struct {
	ID                     string    `json:"id"`
	DoctorID               string    `json:"doctor_id"`
	MaxConsultationsPerDay int       `json:"max_consultations_per_day"`
	MaxAppointmentsPerDay  int       `json:"max_appointments_per_day"`
	ConsultationStartTime  string    `json:"consultation_start_time"`
	ConsultationEndTime    string    `json:"consultation_end_time"`
	AppointmentStartTime   string    `json:"appointment_start_time"`
	AppointmentEndTime     string    `json:"appointment_end_time"`
	DaysAvailable          []string  `json:"days_available"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// getMySettingsHandler godoc
// @Summary Ver mi disponibilidad
// @Tags doctor-settings
// @Produce json
// @Success 200 {object} settingsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /doctors/me/settings [get]
func getMySettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		st, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(st))
	}
}

// putMySettingsHandler godoc
// @Summary Guardar mi disponibilidad
// @Description Crea o reemplaza la configuración del médico: cupos diarios, ventanas HH:MM y días (Monday..Sunday).
// @Tags doctor-settings
// @Accept json
// @Produce json
// @Param payload body settingsRequest true "Configuración"
// @Success 200 {object} settingsResponse
// @Failure 400 {string} string "validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /doctors/me/settings [put]
func putMySettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req settingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		st, err := svc.Upsert(r.Context(), claims.UserID, UpsertInput(req))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(st))
	}
}

func toSettingsResponse(s Settings) settingsResponse {
	days := s.DaysAvailable
	if days == nil {
		days = []string{}
	}
	return settingsResponse{
		ID:                     s.ID,
		DoctorID:               s.DoctorID,
		MaxConsultationsPerDay: s.MaxConsultationsPerDay,
		MaxAppointmentsPerDay:  s.MaxAppointmentsPerDay,
		ConsultationStartTime:  s.ConsultationStartTime,
		ConsultationEndTime:    s.ConsultationEndTime,
		AppointmentStartTime:   s.AppointmentStartTime,
		AppointmentEndTime:     s.AppointmentEndTime,
		DaysAvailable:          days,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
