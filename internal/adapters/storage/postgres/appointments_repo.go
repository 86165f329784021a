package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"vet-telemedicine/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

// Fecha y hora se leen ya formateadas para que el dominio compare strings.
const appointmentSelect = `
	SELECT
		id, patient_id, pet_name, reason,
		to_char(preferred_date, 'YYYY-MM-DD'),
		to_char(preferred_time, 'HH24:MI'),
		status, doctor_id, assigned_at, prescription, created_at
	FROM appointments`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, patient_id, pet_name, reason,
			preferred_date, preferred_time,
			status, doctor_id, assigned_at, prescription, created_at
		) VALUES ($1,$2,$3,$4,$5::date,$6::time,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.PatientID,
		a.PetName,
		a.Reason,
		a.PreferredDate,
		a.PreferredTime,
		string(a.Status),
		toNullString(a.DoctorID),
		toNullTime(a.AssignedAt),
		toNullString(a.Prescription),
		a.CreatedAt,
	)
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	a, err := scanAppointment(r.db.QueryRowContext(ctx, appointmentSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) ListByPatient(ctx context.Context, patientID string) ([]appointments.Appointment, error) {
	return r.list(ctx, appointmentSelect+` WHERE patient_id = $1 ORDER BY created_at ASC`, patientID)
}

func (r *AppointmentsRepo) ListByDoctor(ctx context.Context, doctorID string) ([]appointments.Appointment, error) {
	return r.list(ctx, appointmentSelect+` WHERE doctor_id = $1 ORDER BY created_at ASC`, doctorID)
}

func (r *AppointmentsRepo) ListPending(ctx context.Context) ([]appointments.Appointment, error) {
	return r.list(ctx, appointmentSelect+`
		WHERE doctor_id IS NULL AND status = 'pending'
		ORDER BY created_at ASC`)
}

func (r *AppointmentsRepo) CountByDoctorAndDate(ctx context.Context, doctorID, date string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM appointments
		WHERE doctor_id = $1
		  AND preferred_date = $2::date
	`, doctorID, date).Scan(&n)
	return n, err
}

func (r *AppointmentsRepo) Assign(ctx context.Context, id, doctorID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET doctor_id = $2,
		    assigned_at = $3,
		    status = 'confirmed'
		WHERE id = $1
		  AND doctor_id IS NULL
		  AND status = 'pending'
	`, id, doctorID, at)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *AppointmentsRepo) list(ctx context.Context, query string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(s rowScanner) (appointments.Appointment, error) {
	var (
		a            appointments.Appointment
		status       string
		doctorID     sql.NullString
		assignedAt   sql.NullTime
		prescription sql.NullString
	)

	if err := s.Scan(
		&a.ID,
		&a.PatientID,
		&a.PetName,
		&a.Reason,
		&a.PreferredDate,
		&a.PreferredTime,
		&status,
		&doctorID,
		&assignedAt,
		&prescription,
		&a.CreatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	a.Status = appointments.ParseStatus(status)
	a.DoctorID = fromNullString(doctorID)
	a.AssignedAt = fromNullTime(assignedAt)
	a.Prescription = fromNullString(prescription)
	return a, nil
}
