// Package health wires liveness and readiness checks for the service.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"

	"moversmove/backend/internal/storage/redis"
)

// Checker aggregates the service's health checks.
type Checker struct {
	handler healthcheck.Handler
	redis   *redis.Client
	logger  *zap.Logger
}

// NewChecker builds the health handler. The Redis check is only added when
// Redis is configured; the in-memory limiter has nothing to probe.
func NewChecker(redisClient *redis.Client, logger *zap.Logger) *Checker {
	c := &Checker{
		handler: healthcheck.NewHandler(),
		redis:   redisClient,
		logger:  logger,
	}

	c.handler.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(200))

	if redisClient != nil {
		c.handler.AddReadinessCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx)
		})
	}

	return c
}

// LiveEndpoint serves the liveness probe.
func (c *Checker) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	c.handler.LiveEndpoint(w, r)
}

// ReadyEndpoint serves the readiness probe.
func (c *Checker) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	c.handler.ReadyEndpoint(w, r)
}
