/*
Package patient manages the patient profile card and the medication
panel of the dashboard.
*/
package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"CronApp_V0.1/internal/database"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// Service implements the profile and medication operations on top of a
// database.Store.
type Service struct {
	store database.Store
	newID func() string
}

func NewService(store database.Store) *Service {
	return &Service{store: store, newID: uuid.NewString}
}

func (s *Service) GetProfile(ctx context.Context, patientID string) (ProfileResponse, error) {
	p, err := s.store.GetPatientProfile(ctx, patientID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ProfileResponse{}, ErrNotFound
		}
		return ProfileResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return NewProfileResponse(p), nil
}

// UpdateProfile replaces the provided fields of the profile.
func (s *Service) UpdateProfile(ctx context.Context, patientID string, req UpdateProfileRequest) (ProfileResponse, Advisory, error) {
	if verr := req.validate(); verr != nil {
		return ProfileResponse{}, Advisory{}, verr
	}

	current, err := s.store.GetPatientProfile(ctx, patientID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ProfileResponse{}, Advisory{}, ErrNotFound
		}
		return ProfileResponse{}, Advisory{}, fmt.Errorf("failed to get profile: %w", err)
	}

	saved, err := s.store.UpsertPatientProfile(ctx, req.apply(current))
	if err != nil {
		return ProfileResponse{}, Advisory{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return NewProfileResponse(saved), advisoryProfileUpdated, nil
}

func (s *Service) ListMedications(ctx context.Context, patientID string) (MedicationList, error) {
	meds, err := s.store.ListMedications(ctx, patientID)
	if err != nil {
		return MedicationList{}, fmt.Errorf("failed to list medications: %w", err)
	}
	return NewMedicationList(meds), nil
}

// AddMedication appends one medication. Name and dosage are required;
// when either is blank the list is left unchanged and the returned
// *ValidationError carries the advisory to show.
func (s *Service) AddMedication(ctx context.Context, patientID string, req MedicationRequest) (MedicationResponse, Advisory, error) {
	name := strings.TrimSpace(req.Name)
	dosage := strings.TrimSpace(req.Dosage)
	if name == "" || dosage == "" {
		return MedicationResponse{}, Advisory{}, errIncompleteMedication
	}

	category, ok := ParseCategory(req.Category)
	if !ok {
		return MedicationResponse{}, Advisory{}, errUnknownCategory
	}

	med, err := s.store.CreateMedication(ctx, database.Medication{
		MedicationID: s.newID(),
		PatientID:    patientID,
		Name:         name,
		Dosage:       dosage,
		Frequency:    strings.TrimSpace(req.Frequency),
		Category:     string(category),
		Adherence:    InitialAdherence,
		NextDose:     strings.TrimSpace(req.NextDose),
	})
	if err != nil {
		return MedicationResponse{}, Advisory{}, fmt.Errorf("failed to add medication: %w", err)
	}
	return NewMedicationResponse(med), medicationAddedAdvisory(med.Name), nil
}

func (s *Service) RemoveMedication(ctx context.Context, patientID, medicationID string) error {
	if err := s.store.DeleteMedication(ctx, patientID, medicationID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove medication: %w", err)
	}
	return nil
}
