package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewAreaMetrics(reg)
	require.NoError(t, err)

	m.Observe("fill", time.Now(), 27, nil)
	m.Observe("fill", time.Now(), 0, errors.New("boom"))
	m.Observe("paste", time.Now(), 5, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("fill", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("fill", "error")))
	assert.Equal(t, 27.0, testutil.ToFloat64(m.BlocksChanged.WithLabelValues("fill")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.BlocksChanged.WithLabelValues("paste")))

	_, err = NewAreaMetrics(reg)
	assert.Error(t, err, "Повторная регистрация в том же реестре должна завершиться ошибкой")
}

func TestInitTelemetry_Disabled(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), "test", false)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
