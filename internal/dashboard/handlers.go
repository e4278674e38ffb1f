package dashboard

import (
	"errors"
	"net/http"

	"CronApp_V0.1/internal/patient"
	"CronApp_V0.1/internal/utility"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	builder *Builder
}

func NewHandler(builder *Builder) *Handler {
	return &Handler{builder: builder}
}

// GetOverviewHandler handles GET /dashboard
func (h *Handler) GetOverviewHandler(c echo.Context) error {
	ctx := c.Request().Context()

	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	overview, err := h.builder.Build(ctx, patientID)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
		}
		utility.Logger(c).Error().Err(err).Msg("Failed to build dashboard overview")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load dashboard"})
	}

	return c.JSON(http.StatusOK, overview)
}

// GetEducationHandler handles GET /education
func (h *Handler) GetEducationHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, EducationContent())
}

// RenderDashboardPageHandler renders the patient home page.
func (h *Handler) RenderDashboardPageHandler(c echo.Context) error {
	ctx := c.Request().Context()

	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.Redirect(http.StatusTemporaryRedirect, "/login")
	}

	overview, err := h.builder.Build(ctx, patientID)
	if err != nil {
		utility.Logger(c).Error().Err(err).Msg("RenderDashboardPageHandler: overview unavailable")
		return c.Redirect(http.StatusTemporaryRedirect, "/login")
	}

	return c.Render(http.StatusOK, "dashboard.html", overview)
}
