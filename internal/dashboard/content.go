package dashboard

// The panels below are fixed content: the clinic has no feed for them
// yet, so they are served as-is to every patient.

type BloodPressure struct {
	Systolic      int    `json:"systolic"`
	Diastolic     int    `json:"diastolic"`
	Average       string `json:"average"`
	Goal          string `json:"goal"`
	Status        string `json:"status"`
	StatusLabel   string `json:"status_label"`
	DeltaFromGoal string `json:"delta_from_goal"`
}

var bloodPressureSummary = BloodPressure{
	Systolic:      125,
	Diastolic:     82,
	Average:       "125/82 mmHg",
	Goal:          "120/80 mmHg",
	Status:        "normal",
	StatusLabel:   "Normal",
	DeltaFromGoal: "+10 mmHg",
}

type RiskFactor struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type RiskPanel struct {
	Title           string       `json:"title"`
	Level           string       `json:"level"`
	Probability     int          `json:"probability_percent"`
	Description     string       `json:"description"`
	Factors         []RiskFactor `json:"factors"`
	Recommendations []string     `json:"recommendations"`
}

var cardiovascularRisk = RiskPanel{
	Title:       "Factores de Riesgo Cardiovascular",
	Level:       "Moderado-Alto",
	Probability: 78,
	Description: "Probabilidad de evento cardiovascular en 10 años",
	Factors: []RiskFactor{
		{Name: "Diabetes", Level: "Alto"},
		{Name: "Hipertensión", Level: "Moderado"},
		{Name: "Colesterol", Level: "Moderado"},
		{Name: "Tabaquismo", Level: "Bajo"},
	},
	Recommendations: []string{
		"Realizar actividad física moderada por 30 minutos, 5 veces por semana",
		"Evitar alimentos con alto contenido de sodio para controlar la presión arterial",
		"Consulte con su médico sobre el ajuste de medicamentos para la diabetes",
	},
}

type Appointment struct {
	Month     string `json:"month"`
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	Status    string `json:"status"`
	Confirmed bool   `json:"confirmed"`
}

type Prescription struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type CareCalendar struct {
	Appointments  []Appointment  `json:"appointments"`
	Prescriptions []Prescription `json:"prescriptions"`
}

var careCalendar = CareCalendar{
	Appointments: []Appointment{
		{Month: "May", Title: "Control de Diabetes", Detail: "Dr. García - 10:30 AM", Status: "Confirmada", Confirmed: true},
		{Month: "Jun", Title: "Exámenes de Laboratorio", Detail: "Centro Médico - 8:00 AM", Status: "Por confirmar"},
	},
	Prescriptions: []Prescription{
		{Title: "Renovar prescripción", Detail: "Losartán - Vence el 25 de Mayo"},
		{Title: "Resultado de análisis", Detail: "Hemoglobina glicosilada - Disponible"},
	},
}

type ContentItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	Action      string `json:"action"`
}

// Education holds the three tabs of the education panel.
type Education struct {
	Articles  []ContentItem `json:"articulos"`
	Videos    []ContentItem `json:"videos"`
	Nutrition []ContentItem `json:"nutricion"`
}

var educationContent = Education{
	Articles: []ContentItem{
		{Title: "Controla tu diabetes con ejercicio", Description: "Descubre cómo el ejercicio puede ayudarte a regular tus niveles de azúcar en sangre a lo largo del día.", Tag: "Diabetes", Action: "Leer más"},
		{Title: "Manejo del estrés y presión arterial", Description: "Aprende técnicas efectivas para reducir el estrés y su impacto en tu presión arterial.", Tag: "Hipertensión", Action: "Leer más"},
		{Title: "Adhesión a la medicación", Description: "Consejos prácticos para mantener una rutina consistente con tus medicamentos.", Tag: "Medicación", Action: "Leer más"},
	},
	Videos: []ContentItem{
		{Title: "Ejercicios para pacientes diabéticos", Description: "Serie de ejercicios adaptados para personas con diabetes tipo 2.", Tag: "15 min", Action: "Ver video"},
		{Title: "Cómo medir correctamente la presión arterial", Description: "Guía paso a paso para obtener lecturas precisas en casa.", Tag: "8 min", Action: "Ver video"},
	},
	Nutrition: []ContentItem{
		{Title: "Plan de alimentación para diabetes", Description: "Menú semanal adaptado a tus necesidades específicas.", Tag: "Personalizado", Action: "Ver plan"},
		{Title: "Alimentos que ayudan a controlar la presión", Description: "Lista de alimentos recomendados para pacientes hipertensos.", Tag: "Hipertensión", Action: "Ver lista"},
		{Title: "Entendiendo el índice glucémico", Description: "Guía completa para elegir alimentos de bajo índice glucémico.", Tag: "Diabetes", Action: "Ver guía"},
	},
}

type ActivityEntry struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

type WeeklyActivity struct {
	DaysCompleted int             `json:"days_completed"`
	DaysTotal     int             `json:"days_total"`
	Goal          string          `json:"goal"`
	Activities    []ActivityEntry `json:"activities"`
	TotalMinutes  int             `json:"total_minutes"`
}

func newWeeklyActivity() WeeklyActivity {
	a := WeeklyActivity{
		DaysCompleted: 4,
		DaysTotal:     7,
		Goal:          "Meta: 30 min/día, 5 días/semana",
		Activities: []ActivityEntry{
			{Name: "Caminata", Minutes: 90},
			{Name: "Bicicleta", Minutes: 45},
			{Name: "Natación", Minutes: 30},
		},
	}
	for _, e := range a.Activities {
		a.TotalMinutes += e.Minutes
	}
	return a
}

// EducationContent returns the education tabs.
func EducationContent() Education {
	return educationContent
}
