package database

// DemoPatientID identifies the seeded patient every fresh store carries.
const DemoPatientID = "4f6c1d2e-8a3b-4c5d-9e7f-0a1b2c3d4e5f"

// DemoProfile returns the seeded patient profile.
func DemoProfile() PatientProfile {
	return PatientProfile{
		PatientID: DemoPatientID,
		Name:      "José",
		LastName:  "Ponce Ávila",
		Age:       56,
		Phone:     "(+52) 55 1234 5678",
		Email:     "joseponce@email.com",
		Address:   "Av. Insurgentes Sur 1582, CDMX",
		WeightKg:  95,
		HeightCm:  175,
		IsSmoker:  false,
		Insurance: "IMSS",
	}
}

// DemoMedications returns the seeded active medications in display order.
func DemoMedications() []Medication {
	return []Medication{
		{
			MedicationID: "1",
			PatientID:    DemoPatientID,
			Name:         "Metformina",
			Dosage:       "850mg - 1 pastilla después del desayuno y cena",
			Frequency:    "2 veces al día",
			Category:     "diabetes",
			Adherence:    96,
			NextDose:     "Hoy 20:00",
		},
		{
			MedicationID: "2",
			PatientID:    DemoPatientID,
			Name:         "Glibenclamida",
			Dosage:       "5mg - 1 pastilla antes del desayuno",
			Frequency:    "1 vez al día",
			Category:     "diabetes",
			Adherence:    82,
			NextDose:     "Mañana 7:30",
		},
		{
			MedicationID: "3",
			PatientID:    DemoPatientID,
			Name:         "Losartán",
			Dosage:       "50mg - 1 pastilla en la mañana",
			Frequency:    "1 vez al día",
			Category:     "hipertension",
			Adherence:    100,
			NextDose:     "Mañana 8:00",
		},
	}
}
