package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/go-arcade/edo/pkg/event"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusChanged struct{ from, to string }

func (statusChanged) EventName() string               { return "maintenance.status_changed" }
func (statusChanged) EventType() string               { return "maintenance" }
func (e statusChanged) Transition() (string, string) { return e.from, e.to }

type created struct{}

func (created) EventName() string { return "maintenance.created" }
func (created) EventType() string { return "maintenance" }

func TestDomainMetrics(t *testing.T) {
	bus := event.NewEventBus()
	m := NewDomainMetrics()
	m.Subscribe(bus)

	bus.Publish(created{})
	bus.Publish(statusChanged{from: "pending", to: "in_progress"})
	bus.Publish(statusChanged{from: "pending", to: "in_progress"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("maintenance.created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues("maintenance.status_changed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("maintenance", "pending", "in_progress")))
}

func TestHTTPMetrics_FiberMiddleware(t *testing.T) {
	m := NewHTTPMetrics()
	app := fiber.New()
	app.Use(m.FiberMiddleware())
	app.Get("/units/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for _, path := range []string{"/units/1", "/units/2"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(fiber.MethodGet, "/units/:id", "200")))
}

func TestServer_RegisterCollector(t *testing.T) {
	s := NewServer(MetricsConfig{})
	require.NoError(t, s.RegisterCollector(NewDomainMetrics()))
	assert.Error(t, s.RegisterCollector(NewDomainMetrics()), "duplicate collector")
	assert.NotNil(t, s.Handler())
}
