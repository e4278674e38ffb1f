package patient

import (
	"math"

	"CronApp_V0.1/internal/database"
)

// BMI computes weight / (height in metres)^2, rounded to one decimal.
// A non-positive height yields 0.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10
}

// BMICategory returns the Spanish label shown under the BMI gauge.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Bajo peso"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Sobrepeso"
	default:
		return "Obesidad"
	}
}

// ProfileResponse is the profile card payload.
type ProfileResponse struct {
	database.PatientProfile
	FullName    string  `json:"full_name"`
	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmi_category"`
}

func NewProfileResponse(p database.PatientProfile) ProfileResponse {
	bmi := BMI(p.WeightKg, p.HeightCm)
	return ProfileResponse{
		PatientProfile: p,
		FullName:       p.Name + " " + p.LastName,
		BMI:            bmi,
		BMICategory:    BMICategory(bmi),
	}
}

// UpdateProfileRequest is used for editing the profile (PUT).
// All fields are pointers so omitted fields keep their value.
type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	LastName  *string  `json:"last_name"`
	Age       *int32   `json:"age"`
	Phone     *string  `json:"phone"`
	Email     *string  `json:"email"`
	Address   *string  `json:"address"`
	WeightKg  *float64 `json:"weight_kg"`
	HeightCm  *float64 `json:"height_cm"`
	IsSmoker  *bool    `json:"is_smoker"`
	Insurance *string  `json:"insurance"`
}

// apply copies the provided fields onto p.
func (r UpdateProfileRequest) apply(p database.PatientProfile) database.PatientProfile {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.LastName != nil {
		p.LastName = *r.LastName
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	if r.WeightKg != nil {
		p.WeightKg = *r.WeightKg
	}
	if r.HeightCm != nil {
		p.HeightCm = *r.HeightCm
	}
	if r.IsSmoker != nil {
		p.IsSmoker = *r.IsSmoker
	}
	if r.Insurance != nil {
		p.Insurance = *r.Insurance
	}
	return p
}

func (r UpdateProfileRequest) validate() *ValidationError {
	if r.WeightKg != nil && *r.WeightKg <= 0 {
		return newValidationError("Datos inválidos", "El peso debe ser mayor a cero.")
	}
	if r.HeightCm != nil && *r.HeightCm <= 0 {
		return newValidationError("Datos inválidos", "La altura debe ser mayor a cero.")
	}
	if r.Name != nil && *r.Name == "" {
		return newValidationError("Datos inválidos", "El nombre no puede estar vacío.")
	}
	return nil
}
