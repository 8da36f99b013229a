package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// HealthChecker defines interface for health checking
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a plain function
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// DatabaseHealthChecker checks database health
type DatabaseHealthChecker struct {
	DB *sql.DB
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.DB.PingContext(ctx)
}

// ErrDemoMode is reported while no remote analysis key is configured
var ErrDemoMode = errors.New("remote analysis not configured, serving local estimates only")

// RemoteChecker reports degraded while the remote client runs without a key.
type RemoteChecker struct {
	Configured func() bool
}

func (c RemoteChecker) Check(context.Context) error {
	if c.Configured == nil || !c.Configured() {
		return ErrDemoMode
	}
	return nil
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus represents the health status
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// CheckStatus represents individual check status
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler runs every checker. A failing critical check makes the
// service unhealthy (503); a failing optional one only degrades it (200).
func HealthHandler(critical, optional map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := HealthStatus{
			Status:    StatusHealthy,
			Timestamp: time.Now().UTC(),
			Checks:    make(map[string]CheckStatus),
		}

		for name, checker := range optional {
			if err := checker.Check(ctx); err != nil {
				health.Status = StatusDegraded
				health.Checks[name] = CheckStatus{Status: StatusDegraded, Message: err.Error()}
				continue
			}
			health.Checks[name] = CheckStatus{Status: StatusHealthy}
		}
		for name, checker := range critical {
			if err := checker.Check(ctx); err != nil {
				health.Status = StatusUnhealthy
				health.Checks[name] = CheckStatus{Status: StatusUnhealthy, Message: err.Error()}
				continue
			}
			health.Checks[name] = CheckStatus{Status: StatusHealthy}
		}

		statusCode := http.StatusOK
		if health.Status == StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(health)
	}
}

// ReadinessHandler answers 503 until every critical checker passes.
func ReadinessHandler(critical map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status, code := "ready", http.StatusOK
		for _, checker := range critical {
			if err := checker.Check(ctx); err != nil {
				status, code = "not ready", http.StatusServiceUnavailable
				break
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    status,
			"timestamp": time.Now().UTC(),
		})
	}
}

// LivenessHandler creates a liveness check handler (simplest check)
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
