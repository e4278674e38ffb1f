package patient

import (
	"errors"
	"net/http"

	"CronApp_V0.1/internal/metrics"
	"CronApp_V0.1/internal/utility"
	"github.com/labstack/echo/v4"
)

// Notifier is told when a patient's dashboard data changed.
type Notifier interface {
	Notify(patientID string)
}

type Handler struct {
	service  *Service
	notifier Notifier
}

func NewHandler(service *Service, notifier Notifier) *Handler {
	return &Handler{service: service, notifier: notifier}
}

func (h *Handler) notify(patientID string) {
	if h.notifier != nil {
		h.notifier.Notify(patientID)
	}
}

type profileUpdateResponse struct {
	Profile  ProfileResponse `json:"profile"`
	Advisory Advisory        `json:"advisory"`
}

type medicationAddResponse struct {
	Medication MedicationResponse `json:"medication"`
	Advisory   Advisory           `json:"advisory"`
}

type advisoryError struct {
	Error    string   `json:"error"`
	Advisory Advisory `json:"advisory"`
}

// GetProfileHandler handles GET /profile
func (h *Handler) GetProfileHandler(c echo.Context) error {
	ctx := c.Request().Context()

	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	profile, err := h.service.GetProfile(ctx, patientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
		}
		utility.Logger(c).Error().Err(err).Msg("Failed to retrieve patient profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve profile"})
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler handles PUT /profile
func (h *Handler) UpdateProfileHandler(c echo.Context) error {
	ctx := c.Request().Context()

	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	profile, advisory, err := h.service.UpdateProfile(ctx, patientID, req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			metrics.RecordValidationFailure("profile")
			return c.JSON(http.StatusBadRequest, advisoryError{Error: verr.Error(), Advisory: verr.Advisory})
		case errors.Is(err, ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
		}
		utility.Logger(c).Error().Err(err).Msg("Failed to update patient profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save profile"})
	}

	h.notify(patientID)
	return c.JSON(http.StatusOK, profileUpdateResponse{Profile: profile, Advisory: advisory})
}

// GetMedicationsHandler handles GET /medications
func (h *Handler) GetMedicationsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	list, err := h.service.ListMedications(ctx, patientID)
	if err != nil {
		utility.Logger(c).Error().Err(err).Msg("Failed to retrieve medication list")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve records"})
	}

	return c.JSON(http.StatusOK, list)
}

// CreateMedicationHandler handles POST /medications
func (h *Handler) CreateMedicationHandler(c echo.Context) error {
	ctx := c.Request().Context()

	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	var req MedicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	med, advisory, err := h.service.AddMedication(ctx, patientID, req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			metrics.RecordValidationFailure("medication")
			return c.JSON(http.StatusBadRequest, advisoryError{Error: verr.Error(), Advisory: verr.Advisory})
		}
		utility.Logger(c).Error().Err(err).Msg("Failed to add medication")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save medication"})
	}

	metrics.RecordMedicationAdded(med.Category)
	utility.Logger(c).Info().Str("patient_id", patientID).Str("medication_id", med.MedicationID).Msg("medication added")
	h.notify(patientID)
	return c.JSON(http.StatusCreated, medicationAddResponse{Medication: med, Advisory: advisory})
}

// DeleteMedicationHandler handles DELETE /medications/:medication_id
func (h *Handler) DeleteMedicationHandler(c echo.Context) error {
	ctx := c.Request().Context()

	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	medicationID := c.Param("medication_id")
	if medicationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid medication ID format"})
	}

	if err := h.service.RemoveMedication(ctx, patientID, medicationID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Medication not found or you do not own it"})
		}
		utility.Logger(c).Error().Err(err).Msg("Failed to delete medication")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete record"})
	}

	h.notify(patientID)
	return c.NoContent(http.StatusNoContent)
}
