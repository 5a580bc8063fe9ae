// api/handlers/health_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
)

// HealthHandler reports liveness and the state of the session store.
type HealthHandler struct {
	Redis *redis.Client // nil when sessions live in memory only
	State *auth.State
}

func NewHealthHandler(client *redis.Client, state *auth.State) *HealthHandler {
	return &HealthHandler{Redis: client, State: state}
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok", "sessions": len(h.State.Sessions()), "redis": "disabled"}

	if h.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			customLog.Warnf("Health: redis ping failed: %v", err)
			body["redis"] = "down"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			body["redis"] = "up"
		}
	}
	c.JSON(status, body)
}
