package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelerp/backend/internal/infrastructure/telemetry"
)

func TestHTTPMetrics(t *testing.T) {
	m := telemetry.NewMetrics()
	r := gin.New()
	r.Use(HTTPMetrics(m))
	r.GET("/tickets/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/tickets/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/tickets/2", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "travel_http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			counts[labels["route"]+" "+labels["status"]] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, counts["/tickets/:id 200"])
	assert.Equal(t, 1.0, counts["unmatched 404"])
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight()))
}

func TestHTTPMetrics_Nil(t *testing.T) {
	r := gin.New()
	r.Use(HTTPMetrics(nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
}
