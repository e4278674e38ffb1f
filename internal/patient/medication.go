package patient

import (
	"strings"

	"CronApp_V0.1/internal/database"
)

// Category groups medications on the dashboard.
type Category string

const (
	CategoryDiabetes     Category = "diabetes"
	CategoryHypertension Category = "hipertension"
	CategoryOther        Category = "otro"
)

// InitialAdherence is the adherence a newly added medication starts at.
const InitialAdherence = 100

func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return CategoryDiabetes, true
	case CategoryDiabetes:
		return CategoryDiabetes, true
	case CategoryHypertension:
		return CategoryHypertension, true
	case CategoryOther:
		return CategoryOther, true
	}
	return "", false
}

// AdherenceLevel is the badge colour for an adherence percentage.
type AdherenceLevel string

const (
	AdherenceGood AdherenceLevel = "good"
	AdherenceFair AdherenceLevel = "fair"
	AdherencePoor AdherenceLevel = "poor"
)

func LevelForAdherence(pct int32) AdherenceLevel {
	switch {
	case pct >= 90:
		return AdherenceGood
	case pct >= 70:
		return AdherenceFair
	default:
		return AdherencePoor
	}
}

// MedicationRequest is used to add a medication (POST).
type MedicationRequest struct {
	Name      string `json:"name" form:"name"`
	Dosage    string `json:"dosage" form:"dosage"`
	Frequency string `json:"frequency" form:"frequency"`
	Category  string `json:"category" form:"category"`
	NextDose  string `json:"next_dose" form:"next_dose"`
}

// MedicationResponse is a medication card.
type MedicationResponse struct {
	database.Medication
	AdherenceLevel AdherenceLevel `json:"adherence_level"`
}

func NewMedicationResponse(m database.Medication) MedicationResponse {
	return MedicationResponse{Medication: m, AdherenceLevel: LevelForAdherence(m.Adherence)}
}

// MedicationList is the medication panel, in insertion order and split
// by category.
type MedicationList struct {
	All          []MedicationResponse `json:"all"`
	Diabetes     []MedicationResponse `json:"diabetes"`
	Hypertension []MedicationResponse `json:"hipertension"`
	Other        []MedicationResponse `json:"otro"`
}

func NewMedicationList(meds []database.Medication) MedicationList {
	list := MedicationList{
		All:          make([]MedicationResponse, 0, len(meds)),
		Diabetes:     []MedicationResponse{},
		Hypertension: []MedicationResponse{},
		Other:        []MedicationResponse{},
	}
	for _, m := range meds {
		r := NewMedicationResponse(m)
		list.All = append(list.All, r)
		switch Category(m.Category) {
		case CategoryDiabetes:
			list.Diabetes = append(list.Diabetes, r)
		case CategoryHypertension:
			list.Hypertension = append(list.Hypertension, r)
		default:
			list.Other = append(list.Other, r)
		}
	}
	return list
}
