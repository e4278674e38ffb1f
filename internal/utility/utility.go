package utility

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// GetRealIP is a helper function to get the user's real IP address.
// It checks proxy headers first.
func GetRealIP(c echo.Context) string {
	// This header can be a list: "client, proxy1, proxy2"
	xForwardedFor := c.Request().Header.Get("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		return strings.TrimSpace(ips[0])
	}

	xRealIP := c.Request().Header.Get("X-Real-IP")
	if xRealIP != "" {
		return xRealIP
	}

	return c.RealIP()
}

// GetUserIDFromContext safely retrieves user ID from Echo context
func GetUserIDFromContext(c echo.Context) (string, error) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// Logger returns the request-scoped logger set by the server middleware,
// or the global logger outside a request.
func Logger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get("logger").(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &log.Logger
}

// IPRateLimiter hands out one token bucket per client IP. Only the most
// recently seen clients are tracked; an evicted client starts over with
// a full bucket.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func NewIPRateLimiter(rps float64, burst, maxClients int) (*IPRateLimiter, error) {
	limiters, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter cache: %w", err)
	}
	return &IPRateLimiter{
		limiters: limiters,
		rate:     rate.Limit(rps),
		burst:    burst,
	}, nil
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, ok := i.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(i.rate, i.burst)
		i.limiters.Add(ip, limiter)
	}
	return limiter
}

// Tracked is the number of client IPs currently holding a bucket.
func (i *IPRateLimiter) Tracked() int {
	return i.limiters.Len()
}

// Middleware rejects requests once the client IP runs out of tokens.
func (i *IPRateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := GetRealIP(c)
		if !i.GetLimiter(ip).Allow() {
			Logger(c).Warn().Str("ip", ip).Msg("rate limit exceeded")
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many attempts, please try again later"})
		}
		return next(c)
	}
}
