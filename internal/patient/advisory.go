package patient

// Advisory is the toast shown to the patient after a form submission.
type Advisory struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

const VariantDestructive = "destructive"

// ValidationError rejects a form and carries the advisory to display.
type ValidationError struct {
	Advisory Advisory
}

func newValidationError(title, description string) *ValidationError {
	return &ValidationError{Advisory: Advisory{Title: title, Description: description, Variant: VariantDestructive}}
}

func (e *ValidationError) Error() string {
	return e.Advisory.Title + ": " + e.Advisory.Description
}

var (
	advisoryProfileUpdated = Advisory{
		Title:       "Perfil actualizado",
		Description: "Los datos del perfil han sido actualizados exitosamente.",
	}
	errIncompleteMedication = newValidationError(
		"Campos incompletos",
		"Por favor, completa al menos el nombre y la dosis del medicamento.",
	)
	errUnknownCategory = newValidationError(
		"Categoría inválida",
		"La categoría debe ser diabetes, hipertension u otro.",
	)
)

func medicationAddedAdvisory(name string) Advisory {
	return Advisory{
		Title:       "Medicamento agregado",
		Description: name + " ha sido agregado a tu medicación activa.",
	}
}
