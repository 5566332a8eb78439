package misc

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tron2005/markvera/internal/telemetry/tracing"
	"github.com/tron2005/markvera/pkg"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck reports whether a dependency (db, redis) is reachable.
type HealthCheck func(ctx context.Context) error

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	versionInfo  string
	healthChecks map[string]HealthCheck
}

func NewHandler(versionInfo string, healthChecks map[string]HealthCheck) *Handler {
	return &Handler{
		versionInfo:  versionInfo,
		healthChecks: healthChecks,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(handler.healthChecks))
	for name := range handler.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: "ok", Checks: map[string]string{}}
	status := http.StatusOK
	for _, name := range names {
		if err := handler.healthChecks[name](ctx); err != nil {
			log.Errorf("health check [%s]: %s", name, err)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			span.SetAttributes(attribute.String("health.failed", name))
			continue
		}
		resp.Checks[name] = "ok"
	}

	if status != http.StatusOK {
		span.SetStatus(codes.Error, "degraded")
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal health response: %s", err)
		http.Error(w, "marshal health response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, raw, status)
}
