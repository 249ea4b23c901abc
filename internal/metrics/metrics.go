// Package metrics expõe contadores Prometheus das trocas de token e das consultas às fontes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder é usado pelo gerenciador de tokens, pelo despachante e pelo serviço de relatórios.
type Recorder interface {
	IncTokenExchange(outcome string)
	IncTokenCacheHit()
	ObserveBackendAttempt(source, outcome string, duration time.Duration)
	IncReport(state string)
}

type prometheusRecorder struct {
	tokenExchanges  *prometheus.CounterVec
	tokenCacheHits  prometheus.Counter
	backendAttempts *prometheus.HistogramVec
	reports         *prometheus.CounterVec
}

// New cria o recorder; com enabled=false devolve uma implementação que descarta tudo.
func New(enabled bool, registerer prometheus.Registerer) Recorder {
	if !enabled {
		return Noop()
	}

	factory := promauto.With(registerer)

	return &prometheusRecorder{
		tokenExchanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analytics_token_exchanges_total",
			Help: "Trocas de refresh token por resultado",
		}, []string{"outcome"}),
		tokenCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "analytics_token_cache_hits_total",
			Help: "Access tokens servidos pelo cache",
		}),
		backendAttempts: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analytics_backend_attempt_duration_seconds",
			Help:    "Duração de cada tentativa de consulta por fonte e resultado",
			Buckets: prometheus.DefBuckets,
		}, []string{"source", "outcome"}),
		reports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analytics_reports_total",
			Help: "Relatórios gerados por estado final",
		}, []string{"state"}),
	}
}

func (p *prometheusRecorder) IncTokenExchange(outcome string) {
	p.tokenExchanges.WithLabelValues(outcome).Inc()
}

func (p *prometheusRecorder) IncTokenCacheHit() {
	p.tokenCacheHits.Inc()
}

func (p *prometheusRecorder) ObserveBackendAttempt(source, outcome string, duration time.Duration) {
	p.backendAttempts.WithLabelValues(source, outcome).Observe(duration.Seconds())
}

func (p *prometheusRecorder) IncReport(state string) {
	p.reports.WithLabelValues(state).Inc()
}

type noopRecorder struct{}

func Noop() Recorder { return noopRecorder{} }

func (noopRecorder) IncTokenExchange(string) {}
func (noopRecorder) IncTokenCacheHit() {}
func (noopRecorder) ObserveBackendAttempt(string, string, time.Duration) {}
func (noopRecorder) IncReport(string) {}
