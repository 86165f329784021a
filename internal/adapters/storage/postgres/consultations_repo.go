package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"vet-telemedicine/internal/domain/consultations"
)

type ConsultationsRepo struct {
	db *sql.DB
}

func NewConsultationsRepo(db *sql.DB) *ConsultationsRepo {
	return &ConsultationsRepo{db: db}
}

const consultationColumns = `
	id, patient_id, pet_name, symptoms, status,
	doctor_id, assigned_at, prescription, attachments, created_at`

func (r *ConsultationsRepo) Create(ctx context.Context, c consultations.Consultation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consultations (`+consultationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		c.ID,
		c.PatientID,
		c.PetName,
		c.Symptoms,
		string(c.Status),
		toNullString(c.DoctorID),
		toNullTime(c.AssignedAt),
		toNullString(c.Prescription),
		stringList(c.Attachments),
		c.CreatedAt,
	)
	return err
}

func (r *ConsultationsRepo) GetByID(ctx context.Context, id string) (consultations.Consultation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return consultations.Consultation{}, consultations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+consultationColumns+`
		FROM consultations
		WHERE id = $1
	`, id)

	c, err := scanConsultation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return consultations.Consultation{}, consultations.ErrNotFound
		}
		return consultations.Consultation{}, err
	}
	return c, nil
}

func (r *ConsultationsRepo) ListByPatient(ctx context.Context, patientID string) ([]consultations.Consultation, error) {
	return r.list(ctx, `
		SELECT `+consultationColumns+`
		FROM consultations
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`, patientID)
}

func (r *ConsultationsRepo) ListByDoctor(ctx context.Context, doctorID string) ([]consultations.Consultation, error) {
	return r.list(ctx, `
		SELECT `+consultationColumns+`
		FROM consultations
		WHERE doctor_id = $1
		ORDER BY created_at ASC
	`, doctorID)
}

func (r *ConsultationsRepo) ListPending(ctx context.Context, limit int) ([]consultations.Consultation, error) {
	if limit <= 0 {
		return r.list(ctx, `
			SELECT `+consultationColumns+`
			FROM consultations
			WHERE doctor_id IS NULL AND status = 'pending'
			ORDER BY created_at ASC
		`)
	}
	return r.list(ctx, `
		SELECT `+consultationColumns+`
		FROM consultations
		WHERE doctor_id IS NULL AND status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
}

func (r *ConsultationsRepo) CountAssignedBetween(ctx context.Context, doctorID string, from, to time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM consultations
		WHERE doctor_id = $1
		  AND assigned_at >= $2
		  AND assigned_at <= $3
	`, doctorID, from, to).Scan(&n)
	return n, err
}

// Assign: el WHERE doctor_id IS NULL hace de compare-and-swap.
// 0 filas afectadas = otro proceso la tomó primero.
func (r *ConsultationsRepo) Assign(ctx context.Context, id, doctorID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE consultations
		SET doctor_id = $2,
		    assigned_at = $3,
		    status = 'in_progress'
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

func (r *ConsultationsRepo) Complete(ctx context.Context, id, doctorID, prescription string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE consultations
		SET prescription = $3,
		    status = 'completed'
		WHERE id = $1
		  AND doctor_id = $2
	`, id, doctorID, prescription)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return consultations.ErrNotFound
	}
	return nil
}

func (r *ConsultationsRepo) list(ctx context.Context, query string, args ...any) ([]consultations.Consultation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]consultations.Consultation, 0)
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanConsultation(s rowScanner) (consultations.Consultation, error) {
	var (
		c            consultations.Consultation
		status       string
		doctorID     sql.NullString
		assignedAt   sql.NullTime
		prescription sql.NullString
		attachments  stringList
	)

	if err := s.Scan(
		&c.ID,
		&c.PatientID,
		&c.PetName,
		&c.Symptoms,
		&status,
		&doctorID,
		&assignedAt,
		&prescription,
		&attachments,
		&c.CreatedAt,
	); err != nil {
		return consultations.Consultation{}, err
	}

	c.Status = consultations.Status(status)
	c.DoctorID = fromNullString(doctorID)
	c.AssignedAt = fromNullTime(assignedAt)
	c.Prescription = fromNullString(prescription)
	c.Attachments = []string(attachments)
	return c, nil
}
