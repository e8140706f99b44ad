package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveReadiness(t *testing.T, h *HealthDependenciesHandler) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Readiness: %v", err)
	}
	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, body
}

func TestReadiness_AllHealthy(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	code, body := serveReadiness(t, NewHealthDependenciesHandler(
		Dependency{Name: "mongodb", Pinger: ok},
		Dependency{Name: "redis", Pinger: ok},
	))

	if code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("expected ok, got %d %+v", code, body)
	}
	if len(body.Dependencies) != 2 {
		t.Fatalf("expected 2 dependencies, got %+v", body.Dependencies)
	}
}

func TestReadiness_Degraded(t *testing.T) {
	code, body := serveReadiness(t, NewHealthDependenciesHandler(
		Dependency{Name: "postgres", Pinger: pingFunc(func(context.Context) error { return nil })},
		Dependency{Name: "redis", Pinger: pingFunc(func(context.Context) error { return errors.New("connection refused") })},
	))

	if code != http.StatusServiceUnavailable || body.Status != "degraded" {
		t.Fatalf("expected degraded, got %d %+v", code, body)
	}
	if body.Dependencies["redis"].Error != "connection refused" {
		t.Fatalf("expected redis error, got %+v", body.Dependencies["redis"])
	}
	if body.Dependencies["postgres"].Status != "ok" {
		t.Fatalf("expected postgres ok, got %+v", body.Dependencies["postgres"])
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	if err := NewHealthHandler().Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
		t.Fatalf("Liveness: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
