package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"CronApp_V0.1/internal/config"
	"CronApp_V0.1/internal/database"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthenticator(disabled bool) *Authenticator {
	cfg := config.Config{SessionSecret: "test-secret", AppEnv: "local", AuthDisabled: disabled}
	return New(cfg, database.NewMemoryStore())
}

func protected(c echo.Context) error {
	return c.String(http.StatusOK, c.Get("user_id").(string))
}

func TestIssueAndParseToken(t *testing.T) {
	a := newAuthenticator(false)

	token, err := a.IssueToken(database.DemoPatientID, "José Ponce Ávila")
	require.NoError(t, err)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, database.DemoPatientID, claims.UserID)
	assert.Equal(t, "José Ponce Ávila", claims.Name)
}

func TestParseToken_Rejects(t *testing.T) {
	a := newAuthenticator(false)

	other := New(config.Config{SessionSecret: "another-secret"}, database.NewMemoryStore())
	foreign, err := other.IssueToken(database.DemoPatientID, "x")
	require.NoError(t, err)
	_, err = a.ParseToken(foreign)
	assert.Error(t, err, "wrong signing key")

	a.now = func() time.Time { return time.Now().Add(-2 * AccessTokenDuration) }
	expired, err := a.IssueToken(database.DemoPatientID, "x")
	require.NoError(t, err)
	a.now = time.Now
	_, err = a.ParseToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = a.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestJwtAuthMiddleware(t *testing.T) {
	a := newAuthenticator(false)
	e := echo.New()
	h := a.JwtAuthMiddleware(protected)

	token, err := a.IssueToken(database.DemoPatientID, "José")
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, database.DemoPatientID, rec.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad bearer is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("browser without cookie is redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestJwtAuthMiddleware_Disabled(t *testing.T) {
	a := newAuthenticator(true)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, a.JwtAuthMiddleware(protected)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.DemoPatientID, rec.Body.String())
}

func TestLoginHandler_JSON(t *testing.T) {
	a := newAuthenticator(false)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, a.LoginHandler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, database.DemoPatientID, resp.PatientID)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := a.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, database.DemoPatientID, claims.UserID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, AccessTokenCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginHandler_Form(t *testing.T) {
	a := newAuthenticator(false)
	e := echo.New()

	form := url.Values{"patient_id": {database.DemoPatientID}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	require.NoError(t, a.LoginHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestLoginHandler_UnknownPatient(t *testing.T) {
	a := newAuthenticator(false)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"patient_id":"nobody"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, a.LoginHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutHandler(t *testing.T) {
	a := newAuthenticator(false)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.Header.Set("X-Platform", "mobile")
	rec := httptest.NewRecorder()
	require.NoError(t, a.LogoutHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
