// Package metrics expone contadores Prometheus del pipeline comercial y del servidor HTTP.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/quotes"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

var _ quotes.QuoteNotifier = (*Metrics)(nil)

// Metrics agrupa los collectors de la aplicación sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	quotesSubmitted  *prometheus.CounterVec
	quoteTransitions *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registra los collectors en un registry nuevo (más los de proceso y runtime de Go).
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,

		// quotesSubmitted cuenta solicitudes recibidas por calidad del lead
		quotesSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_submitted_total",
			Help:      "Solicitudes de cotización recibidas por calidad de lead",
		}, []string{"quality"}),

		// quoteTransitions cuenta cambios de estado aplicados
		quoteTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_transitions_total",
			Help:      "Transiciones de estado de cotizaciones por origen y destino",
		}, []string{"from", "to"}),

		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código",
		}, []string{"method", "route", "status"}),

		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de peticiones HTTP en segundos",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms a ~4s
		}, []string{"method", "route"}),
	}
}

// Registry devuelve el registry (tests y exportadores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler sirve /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// QuoteSubmitted implementa quotes.QuoteNotifier.
func (m *Metrics) QuoteSubmitted(_ context.Context, q entity.QuoteRequest) {
	m.quotesSubmitted.WithLabelValues(string(q.LeadQuality)).Inc()
}

// StatusChanged implementa quotes.QuoteNotifier.
func (m *Metrics) StatusChanged(_ context.Context, q entity.QuoteRequest, from entity.QuoteStatus) {
	m.quoteTransitions.WithLabelValues(string(from), string(q.Status)).Inc()
}

// ObserveHTTP registra una petición terminada. route es el patrón de la ruta, no el path real.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
