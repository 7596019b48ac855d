package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the crawler.
type Metrics struct {
	Registry             *prometheus.Registry
	RequestsTotal        *prometheus.CounterVec
	RequestDuration      prometheus.Histogram
	PagesTotal           *prometheus.CounterVec
	ProductsSavedTotal   prometheus.Counter
	ProductsSkippedTotal prometheus.Counter
	OffersExtractedTotal prometheus.Counter
	RetriesTotal         prometheus.Counter
	ErrorsTotal          *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_requests_total",
			Help: "Total HTTP requests issued by the crawler.",
		},
		[]string{"phase"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_request_duration_seconds",
			Help:    "HTTP request latency for crawler requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_pages_total",
			Help: "Pages handled by the crawler, by page kind.",
		},
		[]string{"kind"},
	)
	productsSaved := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_products_saved_total",
			Help: "Product records emitted to the pipeline.",
		},
	)
	productsSkipped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_products_skipped_total",
			Help: "Detail pages skipped because no product name was extractable.",
		},
	)
	offersExtracted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_offers_extracted_total",
			Help: "Per-seller offers extracted from detail pages.",
		},
	)
	retries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_retries_total",
			Help: "Total number of retry attempts scheduled.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_errors_total",
			Help: "Total number of fetch errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, requestDuration, pages, productsSaved, productsSkipped, offersExtracted, retries, errorsTotal)

	return &Metrics{
		Registry:             registry,
		RequestsTotal:        requests,
		RequestDuration:      requestDuration,
		PagesTotal:           pages,
		ProductsSavedTotal:   productsSaved,
		ProductsSkippedTotal: productsSkipped,
		OffersExtractedTotal: offersExtracted,
		RetriesTotal:         retries,
		ErrorsTotal:          errorsTotal,
	}
}

// IncRequest increments the requests total counter.
func (m *Metrics) IncRequest(phase string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(phase).Inc()
}

// ObserveDuration records an HTTP request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncPage increments the handled-pages counter for a page kind.
func (m *Metrics) IncPage(kind string) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(kind).Inc()
}

// IncSaved increments the saved-products counter.
func (m *Metrics) IncSaved() {
	if m == nil {
		return
	}
	m.ProductsSavedTotal.Inc()
}

// IncSkipped increments the skipped-products counter.
func (m *Metrics) IncSkipped() {
	if m == nil {
		return
	}
	m.ProductsSkippedTotal.Inc()
}

// AddOffers adds to the extracted-offers counter.
func (m *Metrics) AddOffers(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.OffersExtractedTotal.Add(float64(n))
}

// IncRetries increments the retries counter.
func (m *Metrics) IncRetries() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
