package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_OrderPlaced(t *testing.T) {
	c := NewCollector()

	c.OrderPlaced(models.PaymentCashOnDelivery, 1220)
	c.OrderPlaced(models.PaymentCashOnDelivery, 450)
	c.OrderPlaced(models.PaymentOnline, 320)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ordersPlaced.WithLabelValues("cod")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ordersPlaced.WithLabelValues("online")))
}

func TestCollector_StatusChanged(t *testing.T) {
	c := NewCollector()

	c.StatusChanged(models.StatusConfirmed)
	c.StatusChanged(models.StatusConfirmed)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.statusChanges.WithLabelValues("confirmed")))
}

func TestCollector_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCollector()

	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/api/menu", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(c.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/api/menu", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "http_requests_total"))
}
