package router

import (
	"net/http"

	_ "vet-telemedicine/docs"
	"vet-telemedicine/internal/app"
	"vet-telemedicine/internal/domain/appointments"
	"vet-telemedicine/internal/domain/assignment"
	"vet-telemedicine/internal/domain/consultations"
	"vet-telemedicine/internal/domain/doctorsettings"
	"vet-telemedicine/internal/middleware"
	"vet-telemedicine/internal/platform/logger"
	"vet-telemedicine/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si no viene, se arma uno en memoria con opciones por defecto
	// (auto-asignación activada).
	App *app.App

	Logger logger.Logger

	// Límite por IP de los endpoints que disparan asignaciones. 0 = sin límite.
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	a := opts.App
	if a == nil {
		a = app.New(app.Options{
			Logger:     log,
			Assignment: assignment.Options{AutoAssignEnabled: true},
		})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	consultations.RegisterRoutes(r, a.Consultations, a.Assignment)
	appointments.RegisterRoutes(r, a.Appointments, a.Assignment)
	doctorsettings.RegisterRoutes(r, a.Settings)
	assignment.RegisterRoutes(r, a.Assignment, middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	return r
}
