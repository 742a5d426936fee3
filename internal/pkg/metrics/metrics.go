package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process-wide counters.
type Metrics struct {
	Requests           *prometheus.CounterVec
	LatencyMS          *prometheus.HistogramVec
	Checkouts          *prometheus.CounterVec
	SalesAmount        prometheus.Counter
	DebtPayments       prometheus.Counter
	DebtPaymentsAmount prometheus.Counter
}

func New(service string) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"method"}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "checkouts_total",
			Help:      "Completed checkouts by payment method.",
		}, []string{"payment_method"}),
		SalesAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: service,
			Name:      "sales_baht_total",
			Help:      "Gross sales amount across completed checkouts.",
		}),
		DebtPayments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: service,
			Name:      "debt_payments_total",
			Help:      "Completed debt payments.",
		}),
		DebtPaymentsAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: service,
			Name:      "debt_payments_baht_total",
			Help:      "Amount collected through debt payments.",
		}),
	}
	prometheus.MustRegister(
		m.Requests, m.LatencyMS, m.Checkouts,
		m.SalesAmount, m.DebtPayments, m.DebtPaymentsAmount,
	)
	return m
}

// ObserveSale records a completed checkout.
func (m *Metrics) ObserveSale(method string, total float64) {
	m.Checkouts.WithLabelValues(method).Inc()
	m.SalesAmount.Add(total)
}

// ObserveDebtPayment records a completed debt payment.
func (m *Metrics) ObserveDebtPayment(amount float64) {
	m.DebtPayments.Inc()
	m.DebtPaymentsAmount.Add(amount)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware counts requests and observes latency.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.Requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		m.LatencyMS.WithLabelValues(r.Method).Observe(float64(time.Since(start).Milliseconds()))
	})
}

// Handler serves the scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
