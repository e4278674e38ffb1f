package server

import (
	"html/template"
	"io"
	"net/http"

	"CronApp_V0.1/internal/metrics"
	"CronApp_V0.1/internal/utility"
	"CronApp_V0.1/web"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// TemplateRenderer is a custom html/template renderer for Echo framework
type TemplateRenderer struct {
	templates *template.Template
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Platform"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(LoggerMiddleware)
	e.Use(metrics.Middleware)

	e.Renderer = &TemplateRenderer{
		templates: template.Must(template.ParseFS(web.Templates, "templates/*.html")),
	}

	// Public routes
	e.GET("/health", s.healthHandler)
	e.GET("/metrics", metrics.Handler())
	e.GET("/login", s.auth.LoginPageHandler)
	e.POST("/login", s.auth.LoginHandler, s.limiter.Middleware)
	e.GET("/logout", s.auth.LogoutHandler)

	// Protected routes
	protected := e.Group("")
	protected.Use(s.auth.JwtAuthMiddleware)

	// Dashboard
	protected.GET("/", s.dashboard.RenderDashboardPageHandler)
	protected.GET("/dashboard", s.dashboard.GetOverviewHandler)
	protected.GET("/education", s.dashboard.GetEducationHandler)

	// Glucose chart
	protected.GET("/diabetes", s.glucose.RenderDiabetesPageHandler)
	protected.GET("/glucose/week", s.glucose.GetWeekHandler)
	protected.POST("/glucose/week/previous", s.glucose.PreviousWeekHandler)
	protected.POST("/glucose/week/next", s.glucose.NextWeekHandler)
	protected.POST("/glucose/readings", s.glucose.AddReadingHandler, s.limiter.Middleware)

	// Profile & medications
	protected.GET("/profile", s.patients.GetProfileHandler)
	protected.PUT("/profile", s.patients.UpdateProfileHandler, s.limiter.Middleware)
	protected.GET("/medications", s.patients.GetMedicationsHandler)
	protected.POST("/medications", s.patients.CreateMedicationHandler, s.limiter.Middleware)
	protected.DELETE("/medications/:medication_id", s.patients.DeleteMedicationHandler, s.limiter.Middleware)

	// Websocket for the open dashboard tab
	protected.GET("/ws", s.dashboardSocketHandler)

	return e
}

func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)

		logger := log.With().Str("request_id", requestID).Logger()

		c.Set("logger", &logger)

		return next(c)
	}
}

// dashboardSocketHandler keeps a socket open so the patient's dashboard
// reloads when their data changes.
func (s *Server) dashboardSocketHandler(c echo.Context) error {
	patientID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ws, err := utility.Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	s.hub.Register(patientID, ws)
	defer s.hub.Unregister(patientID, ws)

	// Nothing is expected from the client; reading detects the disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	return nil
}
