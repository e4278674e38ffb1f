package glucose

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	notified []string
}

func (n *recordingNotifier) Notify(patientID string) {
	n.notified = append(n.notified, patientID)
}

func setupHandler(t *testing.T) (*echo.Echo, *Handler, *recordingNotifier) {
	store, err := NewViewStore(16, NewSelector())
	require.NoError(t, err)
	store.SetClock(func() time.Time { return today })

	notifier := &recordingNotifier{}
	return echo.New(), NewHandler(store, notifier), notifier
}

func call(e *echo.Echo, h echo.HandlerFunc, method, target, contentType, body, patientID string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if patientID != "" {
		c.Set("user_id", patientID)
	}
	return rec, h(c)
}

func decodeWeek(t *testing.T, rec *httptest.ResponseRecorder) WeekResponse {
	var resp WeekResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetWeekHandler_CurrentWeek(t *testing.T) {
	e, h, _ := setupHandler(t)

	rec, err := call(e, h.GetWeekHandler, http.MethodGet, "/glucose/week", "", "", "p1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeWeek(t, rec)
	assert.Equal(t, "2026-10-13", resp.StartDate)
	assert.Equal(t, "2026-10-19", resp.EndDate)
	assert.Equal(t, "13 de octubre al 19 de octubre", resp.Label)
	assert.False(t, resp.CanGoNext)
	assert.False(t, resp.Empty)
	require.Len(t, resp.Readings, 7)
	assert.Equal(t, 145.0, resp.Readings[3].Value)
	assert.Equal(t, StatusElevated, resp.Readings[3].Status)
	assert.Equal(t, "16/10", resp.Readings[3].DayLabel)
	assert.Equal(t, "145 mg/dL - 16/10/2026", resp.Readings[3].Tooltip)
}

func TestGetWeekHandler_RequiresPatient(t *testing.T) {
	e, h, _ := setupHandler(t)

	rec, err := call(e, h.GetWeekHandler, http.MethodGet, "/glucose/week", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNavigationHandlers(t *testing.T) {
	e, h, _ := setupHandler(t)

	for i := 1; i <= 3; i++ {
		rec, err := call(e, h.PreviousWeekHandler, http.MethodPost, "/glucose/week/previous", "", "", "p1")
		require.NoError(t, err)
		resp := decodeWeek(t, rec)
		assert.Equal(t, i, resp.WeeksBack)
		assert.True(t, resp.CanGoNext)
	}

	rec, _ := call(e, h.GetWeekHandler, http.MethodGet, "/glucose/week", "", "", "p1")
	resp := decodeWeek(t, rec)
	assert.True(t, resp.Empty)
	assert.Empty(t, resp.Readings)

	for i := 2; i >= 0; i-- {
		rec, err := call(e, h.NextWeekHandler, http.MethodPost, "/glucose/week/next", "", "", "p1")
		require.NoError(t, err)
		assert.Equal(t, i, decodeWeek(t, rec).WeeksBack)
	}

	// Already on the current week: silently clamped.
	rec, err := call(e, h.NextWeekHandler, http.MethodPost, "/glucose/week/next", "", "", "p1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeWeek(t, rec)
	assert.Equal(t, 0, resp.WeeksBack)
	assert.Equal(t, "2026-10-13", resp.StartDate)
}

func TestAddReadingHandler_JSON(t *testing.T) {
	e, h, notifier := setupHandler(t)

	rec, err := call(e, h.AddReadingHandler, http.MethodPost, "/glucose/readings", echo.MIMEApplicationJSON, `{"value": 190}`, "p1")
	require.NoError(t, err)
	resp := decodeWeek(t, rec)
	require.Len(t, resp.Readings, 8)
	assert.Equal(t, 190.0, resp.Readings[7].Value)
	assert.Equal(t, StatusDangerousHigh, resp.Readings[7].Status)
	assert.Equal(t, []string{"p1"}, notifier.notified)

	rec, err = call(e, h.AddReadingHandler, http.MethodPost, "/glucose/readings", echo.MIMEApplicationJSON, `{"value": "65"}`, "p1")
	require.NoError(t, err)
	resp = decodeWeek(t, rec)
	require.Len(t, resp.Readings, 9)
	assert.Equal(t, StatusDangerousLow, resp.Readings[8].Status)
}

func TestAddReadingHandler_Form(t *testing.T) {
	e, h, _ := setupHandler(t)

	form := url.Values{"value": {"120"}}.Encode()
	rec, err := call(e, h.AddReadingHandler, http.MethodPost, "/glucose/readings", echo.MIMEApplicationForm, form, "p1")
	require.NoError(t, err)
	assert.Len(t, decodeWeek(t, rec).Readings, 8)
}

func TestAddReadingHandler_NonNumericSilentlyDiscarded(t *testing.T) {
	e, h, notifier := setupHandler(t)

	rec, err := call(e, h.AddReadingHandler, http.MethodPost, "/glucose/readings", echo.MIMEApplicationJSON, `{"value": "abc"}`, "p1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeWeek(t, rec).Readings, 7)
	assert.Empty(t, notifier.notified)
	assert.NotContains(t, rec.Body.String(), "error")
}

func TestAddReadingHandler_MalformedBody(t *testing.T) {
	e, h, _ := setupHandler(t)

	rec, err := call(e, h.AddReadingHandler, http.MethodPost, "/glucose/readings", echo.MIMEApplicationJSON, `{"value":`, "p1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddedReadingReplacedOnNavigation(t *testing.T) {
	e, h, _ := setupHandler(t)

	_, err := call(e, h.AddReadingHandler, http.MethodPost, "/glucose/readings", echo.MIMEApplicationJSON, `{"value": 150}`, "p1")
	require.NoError(t, err)
	_, err = call(e, h.PreviousWeekHandler, http.MethodPost, "/glucose/week/previous", "", "", "p1")
	require.NoError(t, err)
	rec, err := call(e, h.NextWeekHandler, http.MethodPost, "/glucose/week/next", "", "", "p1")
	require.NoError(t, err)

	assert.Len(t, decodeWeek(t, rec).Readings, 7)
}
