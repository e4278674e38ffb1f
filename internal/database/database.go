package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"CronApp_V0.1/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Service represents the storage backend the handlers talk to.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close releases the backend resources.
	Close()

	Store() Store
}

type service struct {
	pool  *pgxpool.Pool
	store Store
}

// NewService returns a Postgres-backed service when the database host is
// configured, otherwise the seeded in-memory store.
func NewService(ctx context.Context, cfg config.Database) (Service, error) {
	if !cfg.Enabled() {
		log.Info().Msg("DB_HOST not set, using in-memory patient store")
		return &service{store: NewMemoryStore()}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pg := NewPostgresStore(pool)
	if err := pg.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("Connected to database")
	return &service{pool: pool, store: pg}, nil
}

// NewMemoryService wraps an existing store without a connection pool.
func NewMemoryService(store Store) Service {
	return &service{store: store}
}

func (s *service) Store() Store {
	return s.store
}

// Health checks the health of the database connection.
func (s *service) Health() map[string]string {
	stats := make(map[string]string)

	if s.pool == nil {
		stats["status"] = "up"
		stats["backend"] = "memory"
		return stats
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats["backend"] = "postgres"
	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Error().Err(err).Msg("db down")
		return stats
	}

	poolStats := s.pool.Stat()
	stats["status"] = "up"
	stats["total_conns"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["idle_conns"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["acquired_conns"] = strconv.Itoa(int(poolStats.AcquiredConns()))
	stats["max_conns"] = strconv.Itoa(int(poolStats.MaxConns()))
	stats["acquire_count"] = strconv.FormatInt(poolStats.AcquireCount(), 10)
	stats["acquire_duration_ms"] = strconv.FormatInt(poolStats.AcquireDuration().Milliseconds(), 10)
	stats["empty_acquire_count"] = strconv.FormatInt(poolStats.EmptyAcquireCount(), 10)

	if poolStats.AcquiredConns() > (poolStats.MaxConns() * 8 / 10) { // 80% capacity
		stats["message"] = "The database connection pool is experiencing heavy load."
	}

	return stats
}

func (s *service) Close() {
	if s.pool == nil {
		return
	}
	log.Info().Msg("Disconnected from database")
	s.pool.Close()
}
