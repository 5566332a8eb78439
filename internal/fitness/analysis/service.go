package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tron2005/markvera/internal/cache"
	"github.com/tron2005/markvera/internal/fitness/activities"
	"github.com/tron2005/markvera/internal/telemetry/metrics"
	"github.com/tron2005/markvera/internal/telemetry/tracing"
	"github.com/tron2005/markvera/internal/trainingload"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=analysis

type repo interface {
	ListRecords(ctx context.Context, userID string, rng activities.Range) ([]trainingload.SourceRecord, error)
	GetProfile(ctx context.Context, userID string) (trainingload.Profile, error)
	LatestRestingHR(ctx context.Context, userID string, asOf time.Time) (*float64, error)
}

// Params selects the part of the history a caller is interested in. Metrics
// are always computed over the full history up to AsOf (or To, when earlier)
// and From only trims the output.
type Params struct {
	From *time.Time
	To   *time.Time
	AsOf *time.Time
}

func (p Params) cutoff() *time.Time {
	switch {
	case p.AsOf == nil:
		return p.To
	case p.To == nil:
		return p.AsOf
	case p.To.Before(*p.AsOf):
		return p.To
	default:
		return p.AsOf
	}
}

type Service struct {
	repo           repo
	metricsCache   cache.MetricsCache
	cacheTTL       time.Duration
	location       *time.Location
	metricsManager *metrics.Manager
}

// NewService creates the analysis service. metricsCache may be nil, which
// disables caching.
func NewService(
	repo repo,
	metricsCache cache.MetricsCache,
	cacheTTL time.Duration,
	location *time.Location,
	metricsManager *metrics.Manager,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:           repo,
		metricsCache:   metricsCache,
		cacheTTL:       cacheTTL,
		location:       location,
		metricsManager: metricsManager,
	}
}

func (s *Service) Location() *time.Location {
	return s.location
}

func (s *Service) Metrics(ctx context.Context, userID string, params Params) (_ trainingload.MetricsResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.metrics")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user", userID))

	asOf := params.cutoff()
	lastInstant := endOfDay(asOf, s.location)

	profile, err := s.profile(ctx, userID, lastInstant)
	if err != nil {
		return trainingload.MetricsResult{}, err
	}

	records, err := s.repo.ListRecords(ctx, userID, activities.Range{To: lastInstant})
	if err != nil {
		return trainingload.MetricsResult{}, fmt.Errorf("list records: %w", err)
	}
	sessions := trainingload.FromRecords(records)
	span.SetAttributes(attribute.Int("sessions", len(sessions)))

	key, err := cache.Key(cache.KeyParams{
		UserID:   userID,
		Sessions: sessions,
		Profile:  profile,
		AsOf:     asOf,
		Location: s.location,
	})
	if err != nil {
		return trainingload.MetricsResult{}, fmt.Errorf("cache key: %w", err)
	}

	result, cached := s.cached(ctx, key)
	span.SetAttributes(attribute.Bool("cached", cached))
	if !cached {
		result = s.compute(sessions, profile, asOf, s.location, log.WithField("user", userID))
		if s.metricsCache != nil {
			if err := s.metricsCache.Set(ctx, key, result, s.cacheTTL); err != nil {
				log.Errorf("cache metrics of %s: %s", userID, err)
			}
		}
	}

	if params.From != nil {
		result = trimFrom(result, trainingload.DateOf(*params.From, s.location))
	}
	return result, nil
}

func (s *Service) Summary(ctx context.Context, userID string, asOf *time.Time) (_ trainingload.Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.summary")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	result, err := s.Metrics(ctx, userID, Params{AsOf: asOf})
	if err != nil {
		return trainingload.Summary{}, err
	}
	return trainingload.Summarize(result), nil
}

func (s *Service) Weekly(ctx context.Context, userID string, params Params) (_ []trainingload.WeeklyMetric, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.weekly")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	result, err := s.Metrics(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	if result.Weekly == nil {
		return []trainingload.WeeklyMetric{}, nil
	}
	return result.Weekly, nil
}

func (s *Service) SessionLoads(ctx context.Context, userID string, params Params) (_ []trainingload.SessionLoad, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.sessions")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	result, err := s.Metrics(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	if result.Sessions == nil {
		return []trainingload.SessionLoad{}, nil
	}
	return result.Sessions, nil
}

// Compute runs the engine on caller supplied data. Nothing is read or stored.
func (s *Service) Compute(ctx context.Context, sessions []trainingload.Session, profile trainingload.Profile, asOf *time.Time, loc *time.Location) trainingload.MetricsResult {
	_, span := tracing.GlobalTracer.Start(ctx, "service.analysis.compute")
	defer span.End()

	if loc == nil {
		loc = s.location
	}
	return s.compute(sessions, profile, asOf, loc, log.StandardLogger())
}

func (s *Service) compute(
	sessions []trainingload.Session,
	profile trainingload.Profile,
	asOf *time.Time,
	loc *time.Location,
	logger log.FieldLogger,
) trainingload.MetricsResult {
	started := time.Now()
	result := trainingload.ComputeMetrics(sessions, profile, trainingload.Options{
		AsOf:     asOf,
		Location: loc,
		Logger:   logger,
	})

	s.metricsManager.HistComputeDuration.Observe(time.Since(started).Seconds())
	s.metricsManager.HistSessionsPerCompute.Observe(float64(len(sessions)))
	s.metricsManager.CounterLowConfidenceDays.Add(float64(result.LowConfidenceDays()))
	outcome := "ok"
	if result.Empty() {
		outcome = "empty"
	}
	s.metricsManager.CounterComputations.WithLabelValues(outcome).Inc()

	return result
}

func (s *Service) cached(ctx context.Context, key string) (trainingload.MetricsResult, bool) {
	if s.metricsCache == nil {
		return trainingload.MetricsResult{}, false
	}
	result, ok, err := s.metricsCache.Get(ctx, key)
	if err != nil {
		log.Errorf("metrics cache get: %s", err)
		return trainingload.MetricsResult{}, false
	}
	return result, ok
}

// profile loads the athlete profile. A missing profile is not an error, the
// engine falls back to defaults. A missing resting heart rate is taken from
// the latest measurement.
func (s *Service) profile(ctx context.Context, userID string, asOf *time.Time) (trainingload.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, activities.ErrProfileNotFound) {
		log.Debugf("no profile for %s, using defaults", userID)
		profile = trainingload.Profile{}
	} else if err != nil {
		return trainingload.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	if profile.RestingHR != nil {
		return profile, nil
	}

	measuredAt := time.Now()
	if asOf != nil {
		measuredAt = *asOf
	}
	restingHR, err := s.repo.LatestRestingHR(ctx, userID, measuredAt)
	if err != nil {
		return trainingload.Profile{}, fmt.Errorf("latest resting heart rate: %w", err)
	}
	profile.RestingHR = restingHR
	return profile, nil
}

// endOfDay returns the last instant of the calendar day of t in loc, so that
// every session started on that day is loaded.
func endOfDay(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	next := trainingload.DateOf(*t, loc).AddDays(1).Time()
	end := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return &end
}

// trimFrom drops everything before from. Weeks are kept when any of their
// days is on or after from.
func trimFrom(r trainingload.MetricsResult, from trainingload.Date) trainingload.MetricsResult {
	trimmed := trainingload.MetricsResult{Profile: r.Profile}
	for _, d := range r.Daily {
		if !d.Date.Before(from) {
			trimmed.Daily = append(trimmed.Daily, d)
		}
	}
	for _, w := range r.Weekly {
		if !w.WeekStart.AddDays(6).Before(from) {
			trimmed.Weekly = append(trimmed.Weekly, w)
		}
	}
	for _, a := range r.Aerobic {
		if !a.Date.Before(from) {
			trimmed.Aerobic = append(trimmed.Aerobic, a)
		}
	}
	for _, sl := range r.Sessions {
		if !sl.Date.Before(from) {
			trimmed.Sessions = append(trimmed.Sessions, sl)
		}
	}
	return trimmed
}
