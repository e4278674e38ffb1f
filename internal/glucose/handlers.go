package glucose

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"CronApp_V0.1/internal/metrics"
	"CronApp_V0.1/internal/utility"
	"github.com/labstack/echo/v4"
)

// Notifier is told when a patient's chart data changed.
type Notifier interface {
	Notify(patientID string)
}

// ReadingResponse is a reading decorated for the chart.
type ReadingResponse struct {
	Value       float64   `json:"value"`
	Date        time.Time `json:"date"`
	DayLabel    string    `json:"day_label"`
	Status      Status    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Color       string    `json:"color"`
	BarHeight   float64   `json:"bar_height_percent"`
	Tooltip     string    `json:"tooltip"`
}

// WeekResponse is the chart payload for one window.
type WeekResponse struct {
	Label     string            `json:"label"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	WeeksBack int               `json:"weeks_back"`
	CanGoNext bool              `json:"can_go_next"`
	Empty     bool              `json:"empty"`
	Average   float64           `json:"average"`
	Readings  []ReadingResponse `json:"readings"`
}

// NewWeekResponse renders a view for the chart as of today.
func NewWeekResponse(v View, today time.Time) WeekResponse {
	resp := WeekResponse{
		Label:     v.Window.Label(),
		StartDate: v.Window.Start.Format(time.DateOnly),
		EndDate:   v.Window.End.Format(time.DateOnly),
		WeeksBack: v.Window.WeeksBack(today),
		CanGoNext: v.Window.CanAdvance(today),
		Empty:     len(v.Readings) == 0,
		Readings:  make([]ReadingResponse, 0, len(v.Readings)),
	}
	if !resp.Empty {
		resp.Average = Average(v.Readings)
	}

	for _, r := range v.Readings {
		status := Classify(r.Value)
		resp.Readings = append(resp.Readings, ReadingResponse{
			Value:       r.Value,
			Date:        r.Date,
			DayLabel:    r.Date.Format("02/01"),
			Status:      status,
			StatusLabel: status.Label(),
			Color:       status.Color(),
			BarHeight:   BarHeightPercent(r.Value),
			Tooltip:     formatValue(r.Value) + " mg/dL - " + r.Date.Format("02/01/2006"),
		})
	}
	return resp
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Handler serves the weekly glucose chart.
type Handler struct {
	views    *ViewStore
	notifier Notifier
}

func NewHandler(views *ViewStore, notifier Notifier) *Handler {
	return &Handler{views: views, notifier: notifier}
}

func (h *Handler) respond(c echo.Context, v View) error {
	return c.JSON(http.StatusOK, NewWeekResponse(v, h.views.Now()))
}

// GetWeekHandler handles GET /glucose/week
func (h *Handler) GetWeekHandler(c echo.Context) error {
	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	return h.respond(c, h.views.Get(patientID))
}

// PreviousWeekHandler handles POST /glucose/week/previous
func (h *Handler) PreviousWeekHandler(c echo.Context) error {
	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	v := h.views.Update(patientID, func(v *View, today time.Time) {
		v.PreviousWeek(h.views.Selector(), today)
	})
	metrics.RecordWeekNavigation("previous", true)
	return h.respond(c, v)
}

// NextWeekHandler handles POST /glucose/week/next. Moving past the
// current week is silently ignored.
func (h *Handler) NextWeekHandler(c echo.Context) error {
	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	var moved bool
	v := h.views.Update(patientID, func(v *View, today time.Time) {
		moved = v.NextWeek(h.views.Selector(), today)
	})
	metrics.RecordWeekNavigation("next", moved)
	if !moved {
		utility.Logger(c).Debug().Str("patient_id", patientID).Msg("next week clamped at current week")
	}
	return h.respond(c, v)
}

// AddReadingHandler handles POST /glucose/readings. A value that is not
// a number is dropped without an error and the unchanged chart returned.
func (h *Handler) AddReadingHandler(c echo.Context) error {
	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	raw, err := readingInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	value, ok := ParseReadingValue(raw)
	if !ok {
		metrics.RecordReadingDiscarded()
		return h.respond(c, h.views.Get(patientID))
	}

	v := h.views.Update(patientID, func(v *View, today time.Time) {
		v.AddReading(value, today)
	})
	metrics.RecordReadingAdded()
	utility.Logger(c).Info().Str("patient_id", patientID).Float64("value", value).Msg("glucose reading added")

	if h.notifier != nil {
		h.notifier.Notify(patientID)
	}
	return h.respond(c, v)
}

// readingInput pulls the raw "value" field from a JSON or form body.
// JSON numbers and strings are both accepted.
func readingInput(c echo.Context) (string, error) {
	req := c.Request()
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return c.FormValue("value"), nil
	}

	var body struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return "", err
	}

	switch v := body.Value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", nil
	}
}

// RenderDiabetesPageHandler handles GET /diabetes
func (h *Handler) RenderDiabetesPageHandler(c echo.Context) error {
	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.Redirect(http.StatusTemporaryRedirect, "/login")
	}
	return c.Render(http.StatusOK, "diabetes.html", NewWeekResponse(h.views.Get(patientID), h.views.Now()))
}
