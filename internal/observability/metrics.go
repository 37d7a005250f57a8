package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/annel0/mmo-blockarea/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AreaMetrics - Prometheus-метрики операций над областями блоков
type AreaMetrics struct {
	Operations     *prometheus.CounterVec
	Duration       *prometheus.HistogramVec
	BlocksChanged  *prometheus.CounterVec
	ChunksFailed   prometheus.Counter
	ActiveSessions prometheus.Gauge
}

// NewAreaMetrics создает метрики и регистрирует их в reg
func NewAreaMetrics(reg prometheus.Registerer) (*AreaMetrics, error) {
	m := &AreaMetrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockarea",
			Name:      "operations_total",
			Help:      "Количество операций редактирования по типу и результату.",
		}, []string{"op", "result"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blockarea",
			Name:      "operation_duration_seconds",
			Help:      "Длительность операций редактирования.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"op"}),
		BlocksChanged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockarea",
			Name:      "blocks_changed_total",
			Help:      "Количество измененных блоков по типу операции.",
		}, []string{"op"}),
		ChunksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockarea",
			Name:      "chunks_failed_total",
			Help:      "Чанков, отклонивших запись области.",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockarea",
			Name:      "edit_sessions",
			Help:      "Количество открытых сессий редактирования.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Operations, m.Duration, m.BlocksChanged, m.ChunksFailed, m.ActiveSessions} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрик: %w", err)
		}
	}
	return m, nil
}

// Observe записывает результат одной операции
func (m *AreaMetrics) Observe(op string, start time.Time, changed int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Operations.WithLabelValues(op, result).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if changed > 0 {
		m.BlocksChanged.WithLabelValues(op).Add(float64(changed))
	}
}

// ServeMetrics поднимает HTTP-эндпоинт /metrics и останавливает его при отмене ctx.
// Метод неблокирующий.
func ServeMetrics(ctx context.Context, addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return srv
}
