// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/respond"
)

// readinessTimeout bounds each dependency ping.
const readinessTimeout = 2 * time.Second

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings the Redis client.
	CheckCache func(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and API healthcheck probes.
type HealthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandler constructs a new [HealthHandler].
func NewHealthHandler(deps HealthDependencies, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{dependencies: deps, logger: logger}
}

// Healthcheck handles GET /api/v1/healthcheck.
func (handler *HealthHandler) Healthcheck(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldMessage: "ok"}, "Health check passed")
}

// Liveness handles GET /health.
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"}, "Alive")
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Readiness handles GET /ready. Any failing dependency yields 503.
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	checks := []struct {
		name  string
		check func(ctx context.Context) error
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	results := make([]checkResult, 0, len(checks))
	isSystemReady := true

	for _, dependency := range checks {
		if dependency.check == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
		err := dependency.check(ctx)
		cancel()

		result := checkResult{Name: dependency.name, IsOK: err == nil}
		if err != nil {
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", dependency.name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	payload := map[string]any{constants.FieldStatus: "ready", constants.FieldChecks: results}
	if !isSystemReady {
		payload[constants.FieldStatus] = "degraded"
		respond.Status(writer, http.StatusServiceUnavailable, payload, "Service unavailable")
		return
	}

	respond.OK(writer, payload, "Ready")
}
