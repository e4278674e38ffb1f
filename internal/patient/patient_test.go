package patient

import (
	"context"
	"errors"
	"testing"

	"CronApp_V0.1/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *database.MemoryStore) {
	store := database.NewMemoryStore()
	svc := NewService(store)
	n := 0
	svc.newID = func() string {
		n++
		return "new-" + string(rune('0'+n))
	}
	return svc, store
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestBMI(t *testing.T) {
	assert.Equal(t, 31.0, BMI(95, 175))
	assert.Equal(t, 22.9, BMI(70, 175))
	assert.Equal(t, 0.0, BMI(95, 0))
	assert.Equal(t, 0.0, BMI(0, 175))
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, "Bajo peso", BMICategory(18.4))
	assert.Equal(t, "Normal", BMICategory(18.5))
	assert.Equal(t, "Sobrepeso", BMICategory(25))
	assert.Equal(t, "Obesidad", BMICategory(31.0))
	assert.Equal(t, "", BMICategory(0))
}

func TestLevelForAdherence(t *testing.T) {
	assert.Equal(t, AdherenceGood, LevelForAdherence(96))
	assert.Equal(t, AdherenceGood, LevelForAdherence(90))
	assert.Equal(t, AdherenceFair, LevelForAdherence(89))
	assert.Equal(t, AdherenceFair, LevelForAdherence(70))
	assert.Equal(t, AdherencePoor, LevelForAdherence(69))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("")
	assert.True(t, ok)
	assert.Equal(t, CategoryDiabetes, c)

	c, ok = ParseCategory(" Hipertension ")
	assert.True(t, ok)
	assert.Equal(t, CategoryHypertension, c)

	_, ok = ParseCategory("vitaminas")
	assert.False(t, ok)
}

func TestService_GetProfile(t *testing.T) {
	svc, _ := setupService(t)

	profile, err := svc.GetProfile(context.Background(), database.DemoPatientID)
	require.NoError(t, err)
	assert.Equal(t, "José Ponce Ávila", profile.FullName)
	assert.Equal(t, 31.0, profile.BMI)
	assert.Equal(t, "Obesidad", profile.BMICategory)

	_, err = svc.GetProfile(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	profile, advisory, err := svc.UpdateProfile(ctx, database.DemoPatientID, UpdateProfileRequest{
		WeightKg: floatPtr(80),
		Phone:    strPtr("(+52) 55 0000 0000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Perfil actualizado", advisory.Title)
	assert.Equal(t, 80.0, profile.WeightKg)
	assert.Equal(t, 26.1, profile.BMI)
	assert.Equal(t, "(+52) 55 0000 0000", profile.Phone)
	assert.Equal(t, "IMSS", profile.Insurance)

	again, err := svc.GetProfile(ctx, database.DemoPatientID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, again.WeightKg)
}

func TestService_UpdateProfileRejectsBadMeasurements(t *testing.T) {
	svc, _ := setupService(t)

	_, _, err := svc.UpdateProfile(context.Background(), database.DemoPatientID, UpdateProfileRequest{HeightCm: floatPtr(0)})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, VariantDestructive, verr.Advisory.Variant)

	profile, _ := svc.GetProfile(context.Background(), database.DemoPatientID)
	assert.Equal(t, 175.0, profile.HeightCm)
}

func TestService_AddMedication(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	med, advisory, err := svc.AddMedication(ctx, database.DemoPatientID, MedicationRequest{
		Name:      "Insulina glargina",
		Dosage:    "10 UI por la noche",
		Frequency: "1 vez al día",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", med.MedicationID)
	assert.Equal(t, int32(100), med.Adherence)
	assert.Equal(t, "diabetes", med.Category)
	assert.Equal(t, AdherenceGood, med.AdherenceLevel)
	assert.Equal(t, "Medicamento agregado", advisory.Title)
	assert.Equal(t, "Insulina glargina ha sido agregado a tu medicación activa.", advisory.Description)

	list, err := svc.ListMedications(ctx, database.DemoPatientID)
	require.NoError(t, err)
	require.Len(t, list.All, 4)
	assert.Equal(t, "Insulina glargina", list.All[3].Name)
	assert.Len(t, list.Diabetes, 3)
	assert.Len(t, list.Hypertension, 1)
	assert.Empty(t, list.Other)
}

func TestService_AddMedicationRequiresNameAndDosage(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, req := range []MedicationRequest{
		{Name: "", Dosage: "5mg"},
		{Name: "Aspirina", Dosage: ""},
		{Name: "   ", Dosage: "   "},
	} {
		_, _, err := svc.AddMedication(ctx, database.DemoPatientID, req)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "Campos incompletos", verr.Advisory.Title)
	}

	list, _ := svc.ListMedications(ctx, database.DemoPatientID)
	assert.Len(t, list.All, 3)
}

func TestService_AddMedicationUnknownCategory(t *testing.T) {
	svc, _ := setupService(t)

	_, _, err := svc.AddMedication(context.Background(), database.DemoPatientID, MedicationRequest{
		Name: "Aspirina", Dosage: "100mg", Category: "vitaminas",
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	list, _ := svc.ListMedications(context.Background(), database.DemoPatientID)
	assert.Len(t, list.All, 3)
}

func TestService_RemoveMedication(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.RemoveMedication(ctx, database.DemoPatientID, "3"))
	assert.ErrorIs(t, svc.RemoveMedication(ctx, database.DemoPatientID, "3"), ErrNotFound)

	list, _ := svc.ListMedications(ctx, database.DemoPatientID)
	assert.Empty(t, list.Hypertension)
}
