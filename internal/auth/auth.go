package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"CronApp_V0.1/internal/config"
	"CronApp_V0.1/internal/database"
	"CronApp_V0.1/internal/utility"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	AccessTokenDuration = 12 * time.Hour
	AccessTokenCookie   = "access-token"
	tokenIssuer         = "cronapp"
)

type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	PatientID string `json:"patient_id" form:"patient_id"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	PatientID   string `json:"patient_id"`
	Name        string `json:"name"`
}

// Authenticator issues and checks the session tokens for patients in
// the store.
type Authenticator struct {
	store    database.Store
	secret   []byte
	isProd   bool
	disabled bool
	now      func() time.Time
}

func New(cfg config.Config, store database.Store) *Authenticator {
	return &Authenticator{
		store:    store,
		secret:   []byte(cfg.SessionSecret),
		isProd:   cfg.IsProduction(),
		disabled: cfg.AuthDisabled,
		now:      time.Now,
	}
}

// IssueToken signs an access token for the patient.
func (a *Authenticator) IssueToken(patientID, name string) (string, error) {
	now := a.now()
	claims := &JwtCustomClaims{
		UserID: patientID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ParseToken validates the signature and expiry and returns the claims.
func (a *Authenticator) ParseToken(tokenString string) (*JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (a *Authenticator) JwtAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if a.disabled {
			c.Set("user_id", database.DemoPatientID)
			return next(c)
		}

		var tokenString string
		isMobile := false

		authHeader := c.Request().Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			isMobile = true
		} else {
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil {
				return a.unauthorized(c, isMobile, "Missing access token")
			}
			tokenString = cookie.Value
		}

		claims, err := a.ParseToken(tokenString)
		if err != nil {
			utility.Logger(c).Warn().Err(err).Msg("Token validation failed")
			return a.unauthorized(c, isMobile, "Invalid or expired token")
		}

		c.Set("user_id", claims.UserID)
		return next(c)
	}
}

// unauthorized answers API callers with 401 and sends browsers back to
// the login page.
func (a *Authenticator) unauthorized(c echo.Context, isMobile bool, msg string) error {
	if isMobile || wantsJSON(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
	}
	return c.Redirect(http.StatusTemporaryRedirect, "/login")
}

func wantsJSON(c echo.Context) bool {
	req := c.Request()
	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) ||
		strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

// LoginPageHandler renders the demo sign-in page.
func (a *Authenticator) LoginPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]string{
		"PatientID": database.DemoPatientID,
	})
}

// LoginHandler starts a session for an existing patient. Without a
// patient_id the seeded demo patient is used.
func (a *Authenticator) LoginHandler(c echo.Context) error {
	ctx := c.Request().Context()
	logger := utility.Logger(c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	patientID := strings.TrimSpace(req.PatientID)
	if patientID == "" {
		patientID = database.DemoPatientID
	}

	profile, err := a.store.GetPatientProfile(ctx, patientID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			logger.Warn().Str("patient_id", patientID).Msg("Login attempt for unknown patient")
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unknown patient"})
		}
		logger.Error().Err(err).Msg("Failed to load patient for login")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Login failed"})
	}

	name := profile.Name + " " + profile.LastName
	token, err := a.IssueToken(profile.PatientID, name)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to sign access token")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Login failed"})
	}
	a.setAuthCookie(c, token)
	logger.Info().Str("patient_id", profile.PatientID).Msg("Patient logged in")

	if !wantsJSON(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(AccessTokenDuration.Seconds()),
		PatientID:   profile.PatientID,
		Name:        name,
	})
}

func (a *Authenticator) LogoutHandler(c echo.Context) error {
	a.clearAuthCookie(c)

	isMobile := c.Request().Header.Get("X-Platform") == "mobile" ||
		strings.HasPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	if isMobile || wantsJSON(c) {
		return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
	}
	return c.Redirect(http.StatusTemporaryRedirect, "/login")
}

func (a *Authenticator) setAuthCookie(c echo.Context, accessToken string) {
	cookie := new(http.Cookie)
	cookie.Name = AccessTokenCookie
	cookie.Value = accessToken
	cookie.Expires = a.now().Add(AccessTokenDuration)
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.Secure = a.isProd
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}

func (a *Authenticator) clearAuthCookie(c echo.Context) {
	cookie := new(http.Cookie)
	cookie.Name = AccessTokenCookie
	cookie.Value = ""
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.Secure = a.isProd
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}
