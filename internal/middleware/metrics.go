package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginFailures counts rejected login attempts. A single counter for
	// unknown email and wrong password, matching the uniform error surface.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_login_failures_total",
		Help: "Total number of rejected login attempts",
	})

	// AccountsRegistered counts successful registrations.
	AccountsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_accounts_registered_total",
		Help: "Total number of accounts created",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
