package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre el pool de Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS consultations (
		id            TEXT PRIMARY KEY,
		patient_id    TEXT NOT NULL,
		pet_name      TEXT NOT NULL,
		symptoms      TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending','in_progress','completed')),
		doctor_id     TEXT NULL,
		assigned_at   TIMESTAMPTZ NULL,
		prescription  TEXT NULL,
		attachments   JSONB NOT NULL DEFAULT '[]',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS consultations_pending_idx
		ON consultations (created_at) WHERE doctor_id IS NULL AND status = 'pending'`,
	`CREATE INDEX IF NOT EXISTS consultations_doctor_assigned_idx
		ON consultations (doctor_id, assigned_at)`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id              TEXT PRIMARY KEY,
		patient_id      TEXT NOT NULL,
		pet_name        TEXT NOT NULL,
		reason          TEXT NOT NULL,
		preferred_date  DATE NOT NULL,
		preferred_time  TIME NOT NULL,
		status          TEXT NOT NULL DEFAULT 'pending',
		doctor_id       TEXT NULL,
		assigned_at     TIMESTAMPTZ NULL,
		prescription    TEXT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS appointments_pending_idx
		ON appointments (created_at) WHERE doctor_id IS NULL AND status = 'pending'`,
	`CREATE INDEX IF NOT EXISTS appointments_doctor_date_idx
		ON appointments (doctor_id, preferred_date)`,

	`CREATE TABLE IF NOT EXISTS doctor_settings (
		id                        TEXT PRIMARY KEY,
		doctor_id                 TEXT NOT NULL UNIQUE,
		max_consultations_per_day INTEGER NOT NULL DEFAULT 0,
		max_appointments_per_day  INTEGER NOT NULL DEFAULT 0,
		consultation_start_time   TIME NOT NULL,
		consultation_end_time     TIME NOT NULL,
		appointment_start_time    TIME NOT NULL,
		appointment_end_time      TIME NOT NULL,
		days_available            JSONB NOT NULL DEFAULT '[]',
		created_at                TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at                TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// helpers

// stringList viaja como JSONB.
type stringList []string

func (l stringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *stringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = stringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("stringList: unsupported type %T", src)
	}
	out := []string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// rowScanner cubre *sql.Row y *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
