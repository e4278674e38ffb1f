/*
Package dashboard assembles the patient home screen: the health summary
built from the patient's own data plus the fixed panels (risk, care
calendar, education, activity).
*/
package dashboard

import (
	"context"
	"math"
	"sync"

	"CronApp_V0.1/internal/glucose"
	"CronApp_V0.1/internal/patient"
	"golang.org/x/sync/errgroup"
)

type GlucoseSummary struct {
	Average     float64        `json:"average"`
	Status      glucose.Status `json:"status"`
	StatusLabel string         `json:"status_label"`
	Color       string         `json:"color"`
	WeekLabel   string         `json:"week_label"`
	HasData     bool           `json:"has_data"`
}

type BMISummary struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

type HealthSummary struct {
	Glucose       GlucoseSummary `json:"glucose"`
	BloodPressure BloodPressure  `json:"blood_pressure"`
	BMI           BMISummary     `json:"bmi"`
}

// Overview is the full dashboard payload.
type Overview struct {
	Profile      patient.ProfileResponse `json:"profile"`
	Summary      HealthSummary           `json:"summary"`
	Medications  patient.MedicationList  `json:"medications"`
	GlucoseWeek  glucose.WeekResponse    `json:"glucose_week"`
	Risk         RiskPanel               `json:"risk"`
	CareCalendar CareCalendar            `json:"care_calendar"`
	Activity     WeeklyActivity          `json:"activity"`
	Education    Education               `json:"education"`
}

type Builder struct {
	patients *patient.Service
	views    *glucose.ViewStore
}

func NewBuilder(patients *patient.Service, views *glucose.ViewStore) *Builder {
	return &Builder{patients: patients, views: views}
}

// Build gathers the patient's profile, medications and glucose week
// concurrently and composes the overview.
func (b *Builder) Build(ctx context.Context, patientID string) (Overview, error) {
	res := Overview{
		Risk:         cardiovascularRisk,
		CareCalendar: careCalendar,
		Activity:     newWeeklyActivity(),
		Education:    educationContent,
	}

	g, grpCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	g.Go(func() error {
		p, err := b.patients.GetProfile(grpCtx, patientID)
		if err != nil {
			return err
		}
		mu.Lock()
		res.Profile = p
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		meds, err := b.patients.ListMedications(grpCtx, patientID)
		if err != nil {
			return err
		}
		mu.Lock()
		res.Medications = meds
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		week := glucose.NewWeekResponse(b.views.Get(patientID), b.views.Now())
		mu.Lock()
		res.GlucoseWeek = week
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	res.Summary = HealthSummary{
		Glucose:       summarizeGlucose(res.GlucoseWeek),
		BloodPressure: bloodPressureSummary,
		BMI: BMISummary{
			Value:    res.Profile.BMI,
			Category: res.Profile.BMICategory,
			WeightKg: res.Profile.WeightKg,
			HeightCm: res.Profile.HeightCm,
		},
	}
	return res, nil
}

func summarizeGlucose(week glucose.WeekResponse) GlucoseSummary {
	s := GlucoseSummary{WeekLabel: week.Label, HasData: !week.Empty}
	if week.Empty {
		return s
	}
	s.Average = math.Round(week.Average)
	s.Status = glucose.Classify(s.Average)
	s.StatusLabel = s.Status.Label()
	s.Color = s.Status.Color()
	return s
}
