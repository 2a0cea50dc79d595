// Package metrics expone las métricas Prometheus de la API y del libro de stock.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Toner-api/internal/application/requests"
)

var _ requests.MetricsRecorder = (*Metrics)(nil)

// Metrics registry propio con las métricas HTTP y de dominio.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	mutations       *prometheus.CounterVec
	unitsMoved      *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	submitted       prometheus.Counter
	decisions       *prometheus.CounterVec
	lowStock        prometheus.Gauge
}

// New inicializa el registry y las métricas.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toner_http_requests_total",
			Help: "Peticiones HTTP por ruta, método y código.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "toner_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP por ruta.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toner_stock_mutations_total",
			Help: "Mutaciones de stock confirmadas por tipo.",
		}, []string{"type"}),
		unitsMoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toner_stock_units_total",
			Help: "Unidades de insumo movidas por tipo de transacción.",
		}, []string{"type"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toner_stock_rejections_total",
			Help: "Mutaciones rechazadas por motivo.",
		}, []string{"reason"}),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toner_requests_submitted_total",
			Help: "Solicitudes de insumo registradas.",
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toner_request_decisions_total",
			Help: "Decisiones sobre solicitudes por decisión y resultado.",
		}, []string{"decision", "outcome"}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "toner_low_stock_entries",
			Help: "Entradas en o bajo el umbral en el último escaneo.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal, m.requestDuration,
		m.mutations, m.unitsMoved, m.rejections,
		m.submitted, m.decisions, m.lowStock,
	)
	return m
}

// Handler handler Fiber para GET /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware registra conteo y duración por ruta (patrón, no path concreto).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := "unknown"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		m.requestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// StockMutation cuenta una mutación confirmada.
func (m *Metrics) StockMutation(txType string, quantity int) {
	m.mutations.WithLabelValues(txType).Inc()
	m.unitsMoved.WithLabelValues(txType).Add(float64(quantity))
}

// StockRejected cuenta una mutación rechazada.
func (m *Metrics) StockRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) RequestSubmitted() { m.submitted.Inc() }

func (m *Metrics) RequestDecided(decision, outcome string) {
	m.decisions.WithLabelValues(decision, outcome).Inc()
}

// SetLowStock publica el resultado del último escaneo de stock bajo.
func (m *Metrics) SetLowStock(n int) { m.lowStock.Set(float64(n)) }
