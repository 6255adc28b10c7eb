// Package httpserver provides HTTP server infrastructure components.
package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Component names a backing dependency of the user service.
type Component string

// Components reported by the health endpoints.
const (
	ComponentUserStore Component = "user_store"
	ComponentMongoDB   Component = "mongodb"
	ComponentRedis     Component = "redis"
)

// Health and readiness states.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
)

// ComponentStatus is one entry of /health/details.
type ComponentStatus struct {
	Name    Component `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
}

// HealthResponse is the body of every health endpoint.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components []ComponentStatus `json:"components,omitempty"`
}

// HealthChecker reports the state of the service's components.
type HealthChecker interface {
	IsReady(ctx context.Context) bool
	GetHealthStatus(ctx context.Context) []ComponentStatus
}

// ComponentCheck checks a single component. A failing Critical check makes the
// component unhealthy and the service not ready; any other failure only
// degrades it.
type ComponentCheck struct {
	Component Component
	Critical  bool
	// Check is nil for components that cannot fail, such as the in-memory store.
	Check func(ctx context.Context) error
	// Note is reported while the component is healthy.
	Note string
}

// RunChecks evaluates checks in order.
func RunChecks(ctx context.Context, checks []ComponentCheck) []ComponentStatus {
	statuses := make([]ComponentStatus, 0, len(checks))
	for _, cc := range checks {
		st := ComponentStatus{Name: cc.Component, Status: StatusHealthy, Message: cc.Note}
		if cc.Check != nil {
			if err := cc.Check(ctx); err != nil {
				st.Status = StatusDegraded
				if cc.Critical {
					st.Status = StatusUnhealthy
				}
				st.Message = err.Error()
			}
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// OverallStatus folds component states: unhealthy beats degraded beats healthy.
func OverallStatus(components []ComponentStatus) string {
	overall := StatusHealthy
	for _, c := range components {
		switch c.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}

// RegisterHealthEndpointsWithChecker mounts /health (liveness), /ready and
// /health/details. A nil checker reports ready with no components.
func (r *Router) RegisterHealthEndpointsWithChecker(checker HealthChecker) {
	components := func(ctx context.Context) []ComponentStatus {
		if checker == nil {
			return nil
		}
		return checker.GetHealthStatus(ctx)
	}

	r.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{Status: StatusHealthy})
	})

	r.echo.GET("/ready", func(c echo.Context) error {
		ctx := c.Request().Context()
		resp := HealthResponse{Status: StatusReady, Components: components(ctx)}
		if checker != nil && !checker.IsReady(ctx) {
			resp.Status = StatusNotReady
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		return c.JSON(http.StatusOK, resp)
	})

	r.echo.GET("/health/details", func(c echo.Context) error {
		list := components(c.Request().Context())
		status := OverallStatus(list)
		code := http.StatusOK
		if status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, HealthResponse{Status: status, Components: list})
	})
}
