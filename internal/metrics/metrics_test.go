package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddlewareIncrementsCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	InitMetrics()

	r := gin.New()
	r.Use(Middleware())
	r.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/test", "200"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/test", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveStoreCallSplitsOutcomes(t *testing.T) {
	InitMetrics()

	okBefore := testutil.ToFloat64(StoreCalls.WithLabelValues("list", "ok"))
	errBefore := testutil.ToFloat64(StoreCalls.WithLabelValues("list", "error"))

	ObserveStoreCall("list", time.Now(), nil)
	ObserveStoreCall("list", time.Now(), errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(StoreCalls.WithLabelValues("list", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(StoreCalls.WithLabelValues("list", "error")))
}

func TestRegisterExposesMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	InitMetrics()
	ObserveStoreCall("stat", time.Now(), nil)

	r := gin.New()
	Register(r, "/metrics")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "memorial_")
}
