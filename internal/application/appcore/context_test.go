package appcore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lllypuk/userhub/internal/application/appcore"
)

func TestRequestIDContext(t *testing.T) {
	t.Run("set and get requestID", func(t *testing.T) {
		ctx := appcore.WithRequestID(context.Background(), "req-123")

		assert.Equal(t, "req-123", appcore.RequestID(ctx))
	})

	t.Run("get requestID from empty context", func(t *testing.T) {
		assert.Empty(t, appcore.RequestID(context.Background()))
	})
}
