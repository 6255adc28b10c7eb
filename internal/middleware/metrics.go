package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lllypuk/userhub/internal/infrastructure/metrics"
)

// unmatchedRoute labels requests that hit no registered route, keeping the
// label set bounded.
const unmatchedRoute = "unmatched"

// Metrics records request count, latency and in-flight requests. Requests are
// labelled by route template, never by raw path.
func Metrics(m *metrics.HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			method := c.Request().Method
			status := responseStatus(c, err)

			m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
