package database

import (
	"context"
	"sync"
)

// MemoryStore keeps patient data in process memory. Nothing survives a
// restart; every new store starts from the demo seed.
type MemoryStore struct {
	mu          sync.RWMutex
	profiles    map[string]PatientProfile
	medications map[string][]Medication
	position    int64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		profiles:    make(map[string]PatientProfile),
		medications: make(map[string][]Medication),
	}
	s.profiles[DemoPatientID] = DemoProfile()
	for _, m := range DemoMedications() {
		s.position++
		m.Position = s.position
		s.medications[DemoPatientID] = append(s.medications[DemoPatientID], m)
	}
	return s
}

func (s *MemoryStore) GetPatientProfile(_ context.Context, patientID string) (PatientProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[patientID]
	if !ok {
		return PatientProfile{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) UpsertPatientProfile(_ context.Context, profile PatientProfile) (PatientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.PatientID] = profile
	return profile, nil
}

func (s *MemoryStore) ListMedications(_ context.Context, patientID string) ([]Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meds := s.medications[patientID]
	out := make([]Medication, len(meds))
	copy(out, meds)
	return out, nil
}

func (s *MemoryStore) CreateMedication(_ context.Context, med Medication) (Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.position++
	med.Position = s.position
	s.medications[med.PatientID] = append(s.medications[med.PatientID], med)
	return med, nil
}

func (s *MemoryStore) DeleteMedication(_ context.Context, patientID, medicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meds := s.medications[patientID]
	for i, m := range meds {
		if m.MedicationID == medicationID {
			s.medications[patientID] = append(meds[:i:i], meds[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
