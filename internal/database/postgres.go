package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS patients (
	patient_id TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	last_name  TEXT NOT NULL DEFAULT '',
	age        INTEGER NOT NULL DEFAULT 0,
	phone      TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	address    TEXT NOT NULL DEFAULT '',
	weight_kg  DOUBLE PRECISION NOT NULL,
	height_cm  DOUBLE PRECISION NOT NULL,
	is_smoker  BOOLEAN NOT NULL DEFAULT FALSE,
	insurance  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS patient_medications (
	medication_id TEXT PRIMARY KEY,
	patient_id    TEXT NOT NULL,
	name          TEXT NOT NULL,
	dosage        TEXT NOT NULL,
	frequency     TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL,
	adherence     INTEGER NOT NULL DEFAULT 100,
	next_dose     TEXT NOT NULL DEFAULT '',
	position      BIGSERIAL
);

CREATE INDEX IF NOT EXISTS patient_medications_patient_idx
	ON patient_medications (patient_id, position);
`

const (
	profileColumns    = `patient_id, name, last_name, age, phone, email, address, weight_kg, height_cm, is_smoker, insurance`
	medicationColumns = `medication_id, patient_id, name, dosage, frequency, category, adherence, next_dose, position`
)

// PostgresStore persists patient data with a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tables if needed and inserts the demo patient.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	demo := DemoProfile()
	_, err := s.pool.Exec(ctx, `INSERT INTO patients (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (patient_id) DO NOTHING`,
		demo.PatientID, demo.Name, demo.LastName, demo.Age, demo.Phone, demo.Email,
		demo.Address, demo.WeightKg, demo.HeightCm, demo.IsSmoker, demo.Insurance)
	if err != nil {
		return fmt.Errorf("failed to seed demo patient: %w", err)
	}

	for _, m := range DemoMedications() {
		_, err := s.pool.Exec(ctx, `INSERT INTO patient_medications
			(medication_id, patient_id, name, dosage, frequency, category, adherence, next_dose)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (medication_id) DO NOTHING`,
			m.MedicationID, m.PatientID, m.Name, m.Dosage, m.Frequency, m.Category, m.Adherence, m.NextDose)
		if err != nil {
			return fmt.Errorf("failed to seed medication %s: %w", m.Name, err)
		}
	}
	return nil
}

func (s *PostgresStore) GetPatientProfile(ctx context.Context, patientID string) (PatientProfile, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+profileColumns+` FROM patients WHERE patient_id = $1`, patientID)
	if err != nil {
		return PatientProfile{}, err
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[PatientProfile])
	if errors.Is(err, pgx.ErrNoRows) {
		return PatientProfile{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) UpsertPatientProfile(ctx context.Context, p PatientProfile) (PatientProfile, error) {
	rows, err := s.pool.Query(ctx, `INSERT INTO patients (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (patient_id) DO UPDATE SET
			name = EXCLUDED.name,
			last_name = EXCLUDED.last_name,
			age = EXCLUDED.age,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			weight_kg = EXCLUDED.weight_kg,
			height_cm = EXCLUDED.height_cm,
			is_smoker = EXCLUDED.is_smoker,
			insurance = EXCLUDED.insurance
		RETURNING `+profileColumns,
		p.PatientID, p.Name, p.LastName, p.Age, p.Phone, p.Email,
		p.Address, p.WeightKg, p.HeightCm, p.IsSmoker, p.Insurance)
	if err != nil {
		return PatientProfile{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[PatientProfile])
}

func (s *PostgresStore) ListMedications(ctx context.Context, patientID string) ([]Medication, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+medicationColumns+`
		FROM patient_medications WHERE patient_id = $1 ORDER BY position`, patientID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Medication])
}

func (s *PostgresStore) CreateMedication(ctx context.Context, m Medication) (Medication, error) {
	rows, err := s.pool.Query(ctx, `INSERT INTO patient_medications
		(medication_id, patient_id, name, dosage, frequency, category, adherence, next_dose)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+medicationColumns,
		m.MedicationID, m.PatientID, m.Name, m.Dosage, m.Frequency, m.Category, m.Adherence, m.NextDose)
	if err != nil {
		return Medication{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Medication])
}

func (s *PostgresStore) DeleteMedication(ctx context.Context, patientID, medicationID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM patient_medications
		WHERE patient_id = $1 AND medication_id = $2`, patientID, medicationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
