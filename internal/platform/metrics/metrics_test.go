package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/v1/statistics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/v1/statistics", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", "GET", "404")))
}

func TestRecordDetermination(t *testing.T) {
	m := New()
	m.RecordDetermination(true)
	m.RecordDetermination(true)
	m.RecordDetermination(false)
	m.RecordRejection()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.determinations.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.determinations.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.RecordDetermination(false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `eligibility_determinations_total{eligible="false"} 1`))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordDetermination(true)
	m.RecordRejection()
	assert.Nil(t, m.Registry())
}
