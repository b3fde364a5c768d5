package metrics

import (
	"context"
	"strconv"
	"time"

	"buddyai-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "buddyai_http_requests_total",
	Help: "HTTP requests by method, route and status code",
}, []string{"method", "route", "status"})

var httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "buddyai_http_request_duration_seconds",
	Help:    "HTTP request latency by method and route",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

var providerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "buddyai_llm_calls_total",
	Help: "Language model calls by provider and outcome",
}, []string{"provider", "outcome"})

var providerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "buddyai_llm_call_duration_seconds",
	Help:    "Language model call latency by provider",
	Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
}, []string{"provider"})

// Middleware records one sample per request, labelled by the matched route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

type instrumentedProvider struct {
	llm.LLMProvider
}

// InstrumentProvider wraps p so every Chat call is counted and timed.
func InstrumentProvider(p llm.LLMProvider) llm.LLMProvider {
	return &instrumentedProvider{LLMProvider: p}
}

func (p *instrumentedProvider) Chat(ctx context.Context, history []llm.Message, message string, opts ...llm.Option) (string, error) {
	start := time.Now()
	reply, err := p.LLMProvider.Chat(ctx, history, message, opts...)
	providerDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
	providerCalls.WithLabelValues(p.Name(), outcome(ctx, err)).Inc()
	return reply, err
}

func (p *instrumentedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, nil, prompt, opts...)
}

func outcome(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "success"
	case ctx.Err() == context.DeadlineExceeded:
		return "timeout"
	default:
		return "error"
	}
}
