package http

import (
	"context"
	"net/http"
	"time"

	"usersvc/shared/logger"
)

// Pinger is anything whose liveness can be checked, typically the database
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports 200 while the pinger answers within two seconds,
// 503 otherwise.
func HealthHandler(p Pinger) func(RequestContext) {
	return func(ctx RequestContext) {
		pingCtx, cancel := context.WithTimeout(ctx.Context(), 2*time.Second)
		defer cancel()

		if err := p.Ping(pingCtx); err != nil {
			logger.Warn("Health check failed", logger.Err(err))
			ctx.Status(http.StatusServiceUnavailable)
			ctx.JSON(map[string]string{"status": "unhealthy"})
			return
		}

		ctx.Status(http.StatusOK)
		ctx.JSON(map[string]string{"status": "healthy"})
	}
}
