package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"vet-telemedicine/internal/domain/doctorsettings"
)

type DoctorSettingsRepo struct {
	db *sql.DB
}

func NewDoctorSettingsRepo(db *sql.DB) *DoctorSettingsRepo {
	return &DoctorSettingsRepo{db: db}
}

const settingsSelect = `
	SELECT
		id, doctor_id,
		max_consultations_per_day, max_appointments_per_day,
		to_char(consultation_start_time, 'HH24:MI'),
		to_char(consultation_end_time, 'HH24:MI'),
		to_char(appointment_start_time, 'HH24:MI'),
		to_char(appointment_end_time, 'HH24:MI'),
		days_available, created_at, updated_at
	FROM doctor_settings`

func (r *DoctorSettingsRepo) Upsert(ctx context.Context, s doctorsettings.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO doctor_settings (
			id, doctor_id,
			max_consultations_per_day, max_appointments_per_day,
			consultation_start_time, consultation_end_time,
			appointment_start_time, appointment_end_time,
			days_available, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5::time,$6::time,$7::time,$8::time,$9,$10,$11)
		ON CONFLICT (doctor_id) DO UPDATE SET
			max_consultations_per_day = EXCLUDED.max_consultations_per_day,
			max_appointments_per_day  = EXCLUDED.max_appointments_per_day,
			consultation_start_time   = EXCLUDED.consultation_start_time,
			consultation_end_time     = EXCLUDED.consultation_end_time,
			appointment_start_time    = EXCLUDED.appointment_start_time,
			appointment_end_time      = EXCLUDED.appointment_end_time,
			days_available            = EXCLUDED.days_available,
			updated_at                = EXCLUDED.updated_at
	`,
		s.ID,
		s.DoctorID,
		s.MaxConsultationsPerDay,
		s.MaxAppointmentsPerDay,
		s.ConsultationStartTime,
		s.ConsultationEndTime,
		s.AppointmentStartTime,
		s.AppointmentEndTime,
		stringList(s.DaysAvailable),
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *DoctorSettingsRepo) GetByDoctor(ctx context.Context, doctorID string) (doctorsettings.Settings, error) {
	doctorID = strings.TrimSpace(doctorID)
	if doctorID == "" {
		return doctorsettings.Settings{}, doctorsettings.ErrNotFound
	}

	s, err := scanSettings(r.db.QueryRowContext(ctx, settingsSelect+` WHERE doctor_id = $1`, doctorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doctorsettings.Settings{}, doctorsettings.ErrNotFound
		}
		return doctorsettings.Settings{}, err
	}
	return s, nil
}

// List: orden de alta (created_at, id) como orden natural del store.
func (r *DoctorSettingsRepo) List(ctx context.Context) ([]doctorsettings.Settings, error) {
	rows, err := r.db.QueryContext(ctx, settingsSelect+` ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doctorsettings.Settings, 0)
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSettings(row rowScanner) (doctorsettings.Settings, error) {
	var (
		s    doctorsettings.Settings
		days stringList
	)
	if err := row.Scan(
		&s.ID,
		&s.DoctorID,
		&s.MaxConsultationsPerDay,
		&s.MaxAppointmentsPerDay,
		&s.ConsultationStartTime,
		&s.ConsultationEndTime,
		&s.AppointmentStartTime,
		&s.AppointmentEndTime,
		&days,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return doctorsettings.Settings{}, err
	}
	s.DaysAvailable = []string(days)
	return s, nil
}
