package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/tron2005/markvera/internal/export"
	"github.com/tron2005/markvera/internal/fitness/activities"
	"github.com/tron2005/markvera/internal/telemetry/tracing"
	"github.com/tron2005/markvera/internal/trainingload"
	"github.com/tron2005/markvera/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=analysis_test

type service interface {
	Metrics(ctx context.Context, userID string, params Params) (trainingload.MetricsResult, error)
	Summary(ctx context.Context, userID string, asOf *time.Time) (trainingload.Summary, error)
	Weekly(ctx context.Context, userID string, params Params) ([]trainingload.WeeklyMetric, error)
	Compute(ctx context.Context, sessions []trainingload.Session, profile trainingload.Profile, asOf *time.Time, loc *time.Location) trainingload.MetricsResult
}

// ComputeRequest is the body of the stateless compute endpoint.
type ComputeRequest struct {
	Sessions []trainingload.Session `json:"sessions"`
	Profile  trainingload.Profile   `json:"profile"`
	AsOf     *trainingload.Date     `json:"asOf,omitempty"`
	Timezone string                 `json:"timezone,omitempty"`
}

type Handler struct {
	service        service
	location       *time.Location
	maxComputeBody int64
}

func NewHandler(service service, location *time.Location, maxComputeBody int64) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:        service,
		location:       location,
		maxComputeBody: maxComputeBody,
	}
}

// ParseParams reads from, to and asOf (YYYY-MM-DD) query params.
func ParseParams(query url.Values, loc *time.Location) (Params, error) {
	rng, err := activities.ParseRange(query, loc)
	if err != nil {
		return Params{}, err
	}
	params := Params{From: rng.From, To: rng.To}

	if asOfStr := query.Get("asOf"); asOfStr != "" {
		asOf, err := parseDay(asOfStr, loc)
		if err != nil {
			return Params{}, fmt.Errorf("invalid asOf date: %w", err)
		}
		params.AsOf = &asOf
	}
	return params, nil
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	d, err := trainingload.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	t := d.Time()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.metrics")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	params, err := ParseParams(r.URL.Query(), h.location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Metrics(ctx, userID, params)
	if err != nil {
		log.Errorf("metrics of %s: %s", userID, err)
		http.Error(w, "failed to compute metrics", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, result)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.summary")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	params, err := ParseParams(r.URL.Query(), h.location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.service.Summary(ctx, userID, params.AsOf)
	if err != nil {
		log.Errorf("summary of %s: %s", userID, err)
		http.Error(w, "failed to compute summary", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, summary)
}

func (h *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.weekly")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	params, err := ParseParams(r.URL.Query(), h.location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	weekly, err := h.service.Weekly(ctx, userID, params)
	if err != nil {
		log.Errorf("weekly load of %s: %s", userID, err)
		http.Error(w, "failed to compute weekly load", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, weekly)
}

// HandleExportCSV exports the daily series, or the weekly one with kind=weekly.
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.export.csv")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	params, err := ParseParams(r.URL.Query(), h.location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "" && kind != "daily" && kind != "weekly" {
		http.Error(w, "invalid kind, expected daily or weekly", http.StatusBadRequest)
		return
	}

	result, err := h.service.Metrics(ctx, userID, params)
	if err != nil {
		log.Errorf("export csv of %s: %s", userID, err)
		http.Error(w, "failed to compute metrics", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if kind == "weekly" {
		err = export.WriteWeeklyCSV(&buf, result.Weekly)
	} else {
		err = export.WriteDailyCSV(&buf, result.Daily)
	}
	if err != nil {
		log.Errorf("write csv export of %s: %s", userID, err)
		http.Error(w, "failed to export metrics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trainingload-%s.csv"`, userID))
	pkg.WriteResponseBytes(w, pkg.ContentType.CSV, buf.Bytes(), http.StatusOK)
}

func (h *Handler) HandleExportParquet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.export.parquet")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	params, err := ParseParams(r.URL.Query(), h.location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Metrics(ctx, userID, params)
	if err != nil {
		log.Errorf("export parquet of %s: %s", userID, err)
		http.Error(w, "failed to compute metrics", http.StatusInternalServerError)
		return
	}

	raw, err := export.DailyParquet(result.Daily)
	if err != nil {
		log.Errorf("write parquet export of %s: %s", userID, err)
		http.Error(w, "failed to export metrics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trainingload-%s.parquet"`, userID))
	pkg.WriteResponseBytes(w, pkg.ContentType.Parquet, raw, http.StatusOK)
}

func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.compute")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}
	if h.maxComputeBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxComputeBody)
	}

	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("compute, unmarshal json params: %s", err)
		http.Error(w, "invalid compute request", http.StatusBadRequest)
		return
	}

	loc := h.location
	if req.Timezone != "" {
		var err error
		if loc, err = time.LoadLocation(req.Timezone); err != nil {
			http.Error(w, "invalid timezone", http.StatusBadRequest)
			return
		}
	}

	var asOf *time.Time
	if req.AsOf != nil && !req.AsOf.IsZero() {
		t := req.AsOf.Time()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		asOf = &day
	}

	result := h.service.Compute(ctx, req.Sessions, req.Profile, asOf, loc)
	h.writeJSON(w, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	resp, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, http.StatusOK)
}
