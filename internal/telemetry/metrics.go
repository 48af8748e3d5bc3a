package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/dsaquiz/internal/llm"
)

// Metrics holds the bot's Prometheus collectors. It implements
// llm.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	completions       *prometheus.CounterVec
	completionLatency *prometheus.HistogramVec
	tokens            *prometheus.CounterVec

	quizzes  *prometheus.CounterVec
	attempts prometheus.Histogram

	pollsSent    prometheus.Counter
	pollsFailed  prometheus.Counter
	ticksSkipped prometheus.Counter
	tickDuration prometheus.Histogram
}

// NewMetrics registers all collectors, plus the Go and process
// collectors, on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		completions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dsaquiz_llm_requests_total",
			Help: "Completion calls by model and outcome",
		}, []string{"model", "outcome"}),
		completionLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dsaquiz_llm_request_duration_seconds",
			Help:    "Completion call latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"model"}),
		tokens: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dsaquiz_llm_tokens_total",
			Help: "Tokens consumed by model and direction",
		}, []string{"model", "direction"}),
		quizzes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dsaquiz_quizzes_generated_total",
			Help: "Quizzes produced by source (llm or fallback)",
		}, []string{"source"}),
		attempts: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dsaquiz_quiz_generation_attempts",
			Help:    "Completion attempts needed per quiz",
			Buckets: []float64{1, 2, 3, 5, 8},
		}),
		pollsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "dsaquiz_polls_sent_total",
			Help: "Quiz polls delivered to Telegram",
		}),
		pollsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "dsaquiz_polls_failed_total",
			Help: "Quiz polls Telegram rejected or that failed in transit",
		}),
		ticksSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "dsaquiz_ticks_skipped_total",
			Help: "Scheduler ticks dropped because the previous tick was still running",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dsaquiz_tick_duration_seconds",
			Help:    "Duration of one generate-and-send tick",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

var _ llm.Recorder = (*Metrics)(nil)

// ObserveCompletion implements llm.Recorder.
func (m *Metrics) ObserveCompletion(model, outcome string, latency time.Duration, usage llm.Usage) {
	m.completions.WithLabelValues(model, outcome).Inc()
	m.completionLatency.WithLabelValues(model).Observe(latency.Seconds())
	if usage.InputTokens > 0 {
		m.tokens.WithLabelValues(model, "input").Add(float64(usage.InputTokens))
	}
	if usage.OutputTokens > 0 {
		m.tokens.WithLabelValues(model, "output").Add(float64(usage.OutputTokens))
	}
}

// QuizGenerated counts a produced quiz and the attempts it took.
func (m *Metrics) QuizGenerated(source string, attempts int) {
	m.quizzes.WithLabelValues(source).Inc()
	m.attempts.Observe(float64(attempts))
}

// PollSent counts a delivered poll.
func (m *Metrics) PollSent() { m.pollsSent.Inc() }

// PollFailed counts a poll that could not be delivered.
func (m *Metrics) PollFailed() { m.pollsFailed.Inc() }

// TickSkipped counts a dropped scheduler tick.
func (m *Metrics) TickSkipped() { m.ticksSkipped.Inc() }

// ObserveTick records how long a tick took.
func (m *Metrics) ObserveTick(d time.Duration) { m.tickDuration.Observe(d.Seconds()) }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
