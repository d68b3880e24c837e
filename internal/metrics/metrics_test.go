package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLeaveTransitionCounter(t *testing.T) {
	before := testutil.ToFloat64(leaveTransitions.WithLabelValues("approve", "approved"))
	LeaveTransition("approve", "approved")
	assert.Equal(t, before+1, testutil.ToFloat64(leaveTransitions.WithLabelValues("approve", "approved")))
}

func TestOutboxPublishedCounter(t *testing.T) {
	before := testutil.ToFloat64(outboxPublished.WithLabelValues("topic.x", "failed"))
	OutboxPublished("topic.x", false)
	assert.Equal(t, before+1, testutil.ToFloat64(outboxPublished.WithLabelValues("topic.x", "failed")))
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", Handler())

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/ping/:id", "204"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/42", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/ping/:id", "204")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hrsuit_http_requests_total")
}
