package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("no rows in result set")

// PatientProfile mirrors the patients table.
type PatientProfile struct {
	PatientID string  `json:"patient_id" db:"patient_id"`
	Name      string  `json:"name" db:"name"`
	LastName  string  `json:"last_name" db:"last_name"`
	Age       int32   `json:"age" db:"age"`
	Phone     string  `json:"phone" db:"phone"`
	Email     string  `json:"email" db:"email"`
	Address   string  `json:"address" db:"address"`
	WeightKg  float64 `json:"weight_kg" db:"weight_kg"`
	HeightCm  float64 `json:"height_cm" db:"height_cm"`
	IsSmoker  bool    `json:"is_smoker" db:"is_smoker"`
	Insurance string  `json:"insurance" db:"insurance"`
}

// Medication mirrors the patient_medications table.
type Medication struct {
	MedicationID string `json:"medication_id" db:"medication_id"`
	PatientID    string `json:"-" db:"patient_id"`
	Name         string `json:"name" db:"name"`
	Dosage       string `json:"dosage" db:"dosage"`
	Frequency    string `json:"frequency" db:"frequency"`
	Category     string `json:"category" db:"category"`
	Adherence    int32  `json:"adherence" db:"adherence"`
	NextDose     string `json:"next_dose" db:"next_dose"`
	Position     int64  `json:"-" db:"position"`
}

// Store is the persistence contract for patient data. Implementations
// must return medications in insertion order.
type Store interface {
	GetPatientProfile(ctx context.Context, patientID string) (PatientProfile, error)
	UpsertPatientProfile(ctx context.Context, profile PatientProfile) (PatientProfile, error)

	ListMedications(ctx context.Context, patientID string) ([]Medication, error)
	CreateMedication(ctx context.Context, med Medication) (Medication, error)
	DeleteMedication(ctx context.Context, patientID, medicationID string) error
}
