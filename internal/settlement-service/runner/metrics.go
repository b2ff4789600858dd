package runner

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa os coletores Prometheus de uma execução de liquidação
type Metrics struct {
	settled  *prometheus.CounterVec
	pending  *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration prometheus.Histogram
	lastPass prometheus.Gauge
}

// NewMetrics cria e registra os coletores no registerer informado
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		settled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_wagers_settled_total", Help: "apostas liquidadas por mercado e resultado",
		}, []string{"market", "result"}),
		pending: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_wagers_pending_total", Help: "apostas que continuam pending após a avaliação",
		}, []string{"market"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settlement_errors_total", Help: "erros por estágio",
		}, []string{"stage"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "settlement_pass_duration_seconds",
			Help:    "duração de uma execução completa",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		lastPass: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "settlement_last_pass_timestamp_seconds", Help: "unix time do fim da última execução",
		}),
	}
	reg.MustRegister(m.settled, m.pending, m.errors, m.duration, m.lastPass)
	return m
}

func (m *Metrics) onSettled(market, result string) {
	if m != nil {
		m.settled.WithLabelValues(market, result).Inc()
	}
}

func (m *Metrics) onPending(market string) {
	if m != nil {
		m.pending.WithLabelValues(market).Inc()
	}
}

func (m *Metrics) onError(stage string) {
	if m != nil {
		m.errors.WithLabelValues(stage).Inc()
	}
}

func (m *Metrics) onPass(d time.Duration, end time.Time) {
	if m != nil {
		m.duration.Observe(d.Seconds())
		m.lastPass.Set(float64(end.Unix()))
	}
}
