package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_DominioSeExpone(t *testing.T) {
	m := New()
	m.StockMutation("REMOVE", 3)
	m.StockMutation("REMOVE", 2)
	m.StockRejected("insufficient_stock")
	m.RequestSubmitted()
	m.RequestDecided("APPROVED", "ok")
	m.SetLowStock(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("REMOVE")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.unitsMoved.WithLabelValues("REMOVE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues("APPROVED", "ok")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.lowStock))

	app := fiber.New()
	app.Get("/metrics", m.Handler())
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "toner_stock_mutations_total")
	assert.Contains(t, string(body), "toner_low_stock_entries 4")
}

func TestMetrics_MiddlewareUsaPatronDeRuta(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/requests/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/requests/req_1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/requests/:id", "GET", "418")))
}
