package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Config carries the constant labels attached to every series.
type Config struct {
	ServiceName string
	Environment string
}

const (
	FormatJSON   = "json"
	FormatScreen = "screen"
	FormatPrint  = "print"
	FormatPDF    = "pdf"
	FormatXLSX   = "xlsx"

	ResultOK          = "ok"
	ResultUnavailable = "unavailable"
	ResultThrottled   = "throttled"
	ResultError       = "error"
)

// Metrics exposes the document pipeline instruments.
type Metrics struct {
	rendered      *prometheus.CounterVec
	renderErrors  *prometheus.CounterVec
	dispatches    *prometheus.CounterVec
	wordsOverflow prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func New(registerer prometheus.Registerer, cfg Config) (*Metrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	labels := constLabels(cfg)

	m := &Metrics{
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "recibo_documents_rendered_total",
			Help:        "Assembled receipt documents projected to an output format.",
			ConstLabels: labels,
		}, []string{"format"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "recibo_document_render_errors_total",
			Help:        "Failed projections of an assembled receipt document.",
			ConstLabels: labels,
		}, []string{"format"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "recibo_print_dispatch_total",
			Help:        "Print jobs handed to a print surface, by outcome.",
			ConstLabels: labels,
		}, []string{"surface", "result"}),
		wordsOverflow: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "recibo_amount_words_overflow_total",
			Help:        "Documents whose total could not be spelled in words.",
			ConstLabels: labels,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "recibo_http_requests_total",
			Help:        "HTTP requests by route and status.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "recibo_http_request_duration_seconds",
			Help:        "HTTP request latency by route.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	for _, c := range []prometheus.Collector{
		m.rendered, m.renderErrors, m.dispatches, m.wordsOverflow, m.httpRequests, m.httpDuration,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func constLabels(cfg Config) prometheus.Labels {
	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = "recibo"
	}
	env := strings.TrimSpace(cfg.Environment)
	if env == "" {
		env = "unknown"
	}
	return prometheus.Labels{"service": service, "env": env}
}

func (m *Metrics) RecordRender(format string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.renderErrors.WithLabelValues(format).Inc()
		return
	}
	m.rendered.WithLabelValues(format).Inc()
}

func (m *Metrics) RecordDispatch(surface, result string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(surface, result).Inc()
}

func (m *Metrics) RecordWordsOverflow() {
	if m == nil {
		return
	}
	m.wordsOverflow.Inc()
}

// GinMiddleware records request counts and latency by matched route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
