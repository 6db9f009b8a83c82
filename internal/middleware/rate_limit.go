package middleware

import (
	"fmt"
	"time"

	"github.com/agamjotsodhi/jobly/internal/errs"
	"github.com/agamjotsodhi/jobly/internal/server"

	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware enforces per-IP request limits backed by Redis.
// Used on the auth endpoints, where unthrottled requests mean
// credential stuffing and free bcrypt work for attackers.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs a RateLimitMiddleware.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns an Echo middleware enforcing at most limit requests
// per client IP per window, using a fixed window counter (INCR +
// EXPIRE on first hit).
//
// When Redis is unavailable the limiter fails open: an outage should
// degrade throttling, not take down login.
func (r *RateLimitMiddleware) Limit(name string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", name, c.RealIP())

			count, err := r.server.Redis.Incr(ctx, key).Result()
			if err != nil {
				GetLogger(c).Warn().
					Err(err).
					Str("limiter", name).
					Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			// First hit in this window starts the clock.
			if count == 1 {
				if err := r.server.Redis.Expire(ctx, key, window).Err(); err != nil {
					GetLogger(c).Warn().
						Err(err).
						Str("limiter", name).
						Msg("failed to set rate limit window")
				}
			}

			if count > int64(limit) {
				r.RecordRateLimitHit(c.Path())
				GetLogger(c).Warn().
					Str("limiter", name).
					Int64("count", count).
					Msg("rate limit exceeded")
				return errs.NewTooManyRequestsError("Too many requests, slow down")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic,
// when APM is configured.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
