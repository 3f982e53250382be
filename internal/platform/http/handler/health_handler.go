// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Health handles /healthz. It never touches a dependency.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Pinger is satisfied by the store and cache clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// CheckResult is the health of a single dependency.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadinessResult is the /readyz body.
type ReadinessResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Readiness pings every dependency on /readyz.
type Readiness struct {
	deps    map[string]Pinger
	gauge   *prometheus.GaugeVec
	timeout time.Duration
}

// NewReadiness creates a readiness checker. gauge may be nil.
func NewReadiness(deps map[string]Pinger, gauge *prometheus.GaugeVec) *Readiness {
	return &Readiness{deps: deps, gauge: gauge, timeout: 2 * time.Second}
}

// Check pings each dependency and reports "down" if any fails.
func (r *Readiness) Check(ctx context.Context) ReadinessResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	names := make([]string, 0, len(r.deps))
	for name := range r.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	res := ReadinessResult{Status: "up", Checks: make(map[string]CheckResult, len(names))}
	for _, name := range names {
		up := 1.0
		if err := r.deps[name].Ping(ctx); err != nil {
			slog.WarnContext(ctx, "readiness check failed", "dependency", name, "error", err)
			res.Status = "down"
			res.Checks[name] = CheckResult{Status: "down", Error: err.Error()}
			up = 0
		} else {
			res.Checks[name] = CheckResult{Status: "up"}
		}
		if r.gauge != nil {
			r.gauge.WithLabelValues(name).Set(up)
		}
	}
	return res
}

// Handle serves /readyz: 200 when every dependency is up, 503 otherwise.
func (r *Readiness) Handle(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	res := r.Check(c.Request.Context())
	status := http.StatusOK
	if res.Status != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, res)
}
