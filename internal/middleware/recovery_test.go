package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/userhub/internal/middleware"
)

func TestDefaultRecoveryConfig(t *testing.T) {
	config := middleware.DefaultRecoveryConfig()

	assert.NotNil(t, config.Logger)
	assert.Equal(t, middleware.DefaultStackSize, config.StackSize)
	assert.False(t, config.DisablePrintStack)
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name    string
		panicOf any
		wantLog string
	}{
		{name: "string panic", panicOf: "something went wrong", wantLog: "something went wrong"},
		{name: "error panic", panicOf: errors.New("store exploded"), wantLog: "store exploded"},
		{name: "other panic", panicOf: 42, wantLog: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuffer bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

			e := echo.New()
			e.Use(middleware.Recovery(logger))
			e.GET("/panic", func(echo.Context) error {
				panic(tt.panicOf)
			})

			rec := httptest.NewRecorder()
			assert.NotPanics(t, func() {
				e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
			})

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"message": "Internal server error"}, body)

			assert.Contains(t, logBuffer.String(), "panic recovered")
			assert.Contains(t, logBuffer.String(), tt.wantLog)
			assert.Contains(t, logBuffer.String(), "stack")
		})
	}
}

func TestRecovery_DisablePrintStack(t *testing.T) {
	var logBuffer bytes.Buffer
	config := middleware.DefaultRecoveryConfig()
	config.Logger = slog.New(slog.NewJSONHandler(&logBuffer, nil))
	config.DisablePrintStack = true

	e := echo.New()
	e.Use(middleware.RecoveryWithConfig(config))
	e.GET("/panic", func(echo.Context) error {
		panic("boom")
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/panic", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &entry))
	assert.NotContains(t, entry, "stack")
	assert.Equal(t, "boom", entry["error"])
}

func TestRecovery_LogsRequestID(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

	e := echo.New()
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.Logging(middleware.LoggingConfig{Logger: slog.New(slog.DiscardHandler)}))
	e.GET("/panic", func(echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logBuffer.String(), `"request_id":"req-42"`)
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(middleware.Recovery(nil))
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "fine")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
}
