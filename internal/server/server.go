/*
Package server implements the application's network transport layer.
It wires the patient stores, the glucose chart state and the dashboard
push hub behind one echo router and configures the HTTP server.
*/
package server

import (
	"fmt"
	"net/http"
	"time"

	"CronApp_V0.1/internal/auth"
	"CronApp_V0.1/internal/config"
	"CronApp_V0.1/internal/dashboard"
	"CronApp_V0.1/internal/database"
	"CronApp_V0.1/internal/glucose"
	"CronApp_V0.1/internal/patient"
	"CronApp_V0.1/internal/utility"
)

// Server holds the configuration and dependencies for the HTTP service.
type Server struct {
	cfg config.Config

	// db provides the patient store and its health.
	db database.Service

	// views keeps the glucose week each patient is looking at.
	views *glucose.ViewStore

	// hub pushes refresh notices to open dashboards.
	hub *utility.Hub

	auth      *auth.Authenticator
	limiter   *utility.IPRateLimiter
	startTime time.Time

	glucose   *glucose.Handler
	patients  *patient.Handler
	dashboard *dashboard.Handler
}

// New builds the service graph on top of an opened database.
func New(cfg config.Config, db database.Service) (*Server, error) {
	views, err := glucose.NewViewStore(cfg.ViewCacheSize, glucose.NewSelector())
	if err != nil {
		return nil, fmt.Errorf("failed to create glucose view store: %w", err)
	}

	limiter, err := utility.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.RateLimitMaxClients)
	if err != nil {
		return nil, err
	}

	hub := utility.NewHub()
	patients := patient.NewService(db.Store())

	return &Server{
		cfg:       cfg,
		db:        db,
		views:     views,
		hub:       hub,
		auth:      auth.New(cfg, db.Store()),
		limiter:   limiter,
		startTime: time.Now(),
		glucose:   glucose.NewHandler(views, hub),
		patients:  patient.NewHandler(patients, hub),
		dashboard: dashboard.NewHandler(dashboard.NewBuilder(patients, views)),
	}, nil
}

// NewServer returns a configured *http.Server with production timeouts.
func NewServer(cfg config.Config, db database.Service) (*http.Server, error) {
	s, err := New(cfg, db)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, nil
}
