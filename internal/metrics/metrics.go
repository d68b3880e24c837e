package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrsuit"

var (
	// Labels: method, route, status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests handled",
	}, []string{"method", "route", "status"})

	// Labels: method, route
	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Labels: transition, to_status
	leaveTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "leave",
		Name:      "transitions_total",
		Help:      "Persisted leave status transitions",
	}, []string{"transition", "to_status"})

	// Labels: transition
	leaveNoops = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "leave",
		Name:      "noop_transitions_total",
		Help:      "Approve or unapprove calls whose precondition did not hold",
	}, []string{"transition"})

	// Labels: topic, result (sent, failed)
	outboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "outbox",
		Name:      "published_total",
		Help:      "Outbox events relayed to kafka",
	}, []string{"topic", "result"})

	// Labels: topic, result (processed, skipped, failed)
	eventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "consumer",
		Name:      "events_total",
		Help:      "Kafka events handled by consumers",
	}, []string{"topic", "result"})
)

func LeaveTransition(transition, toStatus string) {
	leaveTransitions.WithLabelValues(transition, toStatus).Inc()
}

func LeaveNoop(transition string) {
	leaveNoops.WithLabelValues(transition).Inc()
}

func OutboxPublished(topic string, ok bool) {
	result := "sent"
	if !ok {
		result = "failed"
	}
	outboxPublished.WithLabelValues(topic, result).Inc()
}

func EventConsumed(topic, result string) {
	eventsConsumed.WithLabelValues(topic, result).Inc()
}

// GinMiddleware records count and latency per matched route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
