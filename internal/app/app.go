package app

import (
	"database/sql"
	"time"

	mem "vet-telemedicine/internal/adapters/storage/memory"
	pg "vet-telemedicine/internal/adapters/storage/postgres"
	"vet-telemedicine/internal/domain/appointments"
	"vet-telemedicine/internal/domain/assignment"
	"vet-telemedicine/internal/domain/consultations"
	"vet-telemedicine/internal/domain/doctorsettings"
	"vet-telemedicine/internal/platform/logger"
	"vet-telemedicine/internal/ports/cache"
)

// Options del contenedor. Todo es opcional: sin DB usa repos en memoria,
// sin Cache lee settings directo del repo.
type Options struct {
	DB       *sql.DB
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   logger.Logger

	Assignment assignment.Options
}

// App agrupa los services ya cableados. Lo usan el router y el CLI.
type App struct {
	Consultations *consultations.Service
	Appointments  *appointments.Service
	Settings      *doctorsettings.Service
	Assignment    *assignment.Service
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	var (
		consultRepo  consultations.Repository
		apptRepo     appointments.Repository
		settingsRepo doctorsettings.Repository
	)

	if opts.DB != nil {
		consultRepo = pg.NewConsultationsRepo(opts.DB)
		apptRepo = pg.NewAppointmentsRepo(opts.DB)
		settingsRepo = pg.NewDoctorSettingsRepo(opts.DB)
	} else {
		consultRepo = mem.NewConsultationRepo()
		apptRepo = mem.NewAppointmentRepo()
		settingsRepo = mem.NewDoctorSettingsRepo()
	}

	settingsSvc := doctorsettings.NewService(settingsRepo, opts.Cache, opts.CacheTTL)

	return &App{
		Consultations: consultations.NewService(consultRepo),
		Appointments:  appointments.NewService(apptRepo),
		Settings:      settingsSvc,
		Assignment:    assignment.NewService(settingsSvc, consultRepo, apptRepo, log, opts.Assignment),
	}
}
