package activities

import (
	"context"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tron2005/markvera/internal/importer"
	"github.com/tron2005/markvera/internal/telemetry/metrics"
	"github.com/tron2005/markvera/internal/telemetry/tracing"
	"github.com/tron2005/markvera/internal/trainingload"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=activities

type repo interface {
	ListRecords(ctx context.Context, userID string, rng Range) ([]trainingload.SourceRecord, error)
	AddManual(ctx context.Context, userID string, entry ManualEntry) (ManualEntry, error)
	DeleteManual(ctx context.Context, userID, id string) error
	AddFit(ctx context.Context, userID string, a trainingload.FitActivity) error
	GetProfile(ctx context.Context, userID string) (trainingload.Profile, error)
	UpsertProfile(ctx context.Context, userID string, profile trainingload.Profile) (trainingload.Profile, error)
	AddRestingHR(ctx context.Context, userID string, date trainingload.Date, heartRate float64) error
}

type cacheInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) (int, error)
}

type Service struct {
	repo           repo
	metricsCache   cacheInvalidator
	metricsManager *metrics.Manager
}

// NewService creates the activities service. Every write drops the cached
// metrics of the user from metricsCache, which may be nil.
func NewService(repo repo, metricsCache cacheInvalidator, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsCache:   metricsCache,
		metricsManager: metricsManager,
	}
}

func (s *Service) invalidateMetrics(ctx context.Context, userID string) {
	if s.metricsCache == nil {
		return
	}
	deleted, err := s.metricsCache.InvalidateUser(ctx, userID)
	if err != nil {
		log.Errorf("invalidate cached metrics of %s: %s", userID, err)
		return
	}
	log.Tracef("invalidated %d cached metrics of %s", deleted, userID)
}

// ListSessions returns the canonical sessions of all sources, deduplicated
// and ordered by start.
func (s *Service) ListSessions(ctx context.Context, userID string, rng Range) (_ []trainingload.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.sessions.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	records, err := s.repo.ListRecords(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	sessions := trainingload.Normalize(trainingload.FromRecords(records))
	if sessions == nil {
		sessions = []trainingload.Session{}
	}
	return sessions, nil
}

func (s *Service) AddManual(ctx context.Context, userID string, entry ManualEntry) (_ ManualEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.manual.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := entry.Validate(); err != nil {
		return ManualEntry{}, err
	}
	added, err := s.repo.AddManual(ctx, userID, entry)
	if err != nil {
		return ManualEntry{}, fmt.Errorf("add manual activity: %w", err)
	}
	s.metricsManager.CounterImportedSessions.WithLabelValues(trainingload.SourceManual).Inc()
	s.invalidateMetrics(ctx, userID)
	return added, nil
}

func (s *Service) DeleteManual(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.manual.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := s.repo.DeleteManual(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateMetrics(ctx, userID)
	return nil
}

// ImportFIT decodes an uploaded FIT file and stores its session. Importing
// the same file twice gives ErrDuplicateActivity.
func (s *Service) ImportFIT(ctx context.Context, userID string, r io.Reader) (_ trainingload.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.fit.import")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	activity, err := importer.DecodeFIT(r)
	if err != nil {
		return trainingload.Session{}, err
	}

	sessions := trainingload.FromRecords([]trainingload.SourceRecord{activity})
	if len(sessions) == 0 {
		return trainingload.Session{}, importer.ErrNoSession
	}

	if err := s.repo.AddFit(ctx, userID, activity); err != nil {
		return trainingload.Session{}, err
	}
	s.metricsManager.CounterImportedSessions.WithLabelValues(trainingload.SourceFIT).Inc()
	s.invalidateMetrics(ctx, userID)

	log.Debugf("fit session %s imported for %s", sessions[0].ID, userID)
	return sessions[0], nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (_ trainingload.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.profile.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.repo.GetProfile(ctx, userID)
}

func (s *Service) PutProfile(ctx context.Context, userID string, profile trainingload.Profile) (_ trainingload.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.profile.put")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	updated, err := s.repo.UpsertProfile(ctx, userID, profile)
	if err != nil {
		return trainingload.Profile{}, err
	}
	s.invalidateMetrics(ctx, userID)
	return updated, nil
}

func (s *Service) AddRestingHR(ctx context.Context, userID string, date trainingload.Date, heartRate float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activities.restinghr.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if date.IsZero() {
		date = trainingload.DateOf(time.Now(), time.UTC)
	}
	if heartRate <= 0 || heartRate > 250 {
		return fmt.Errorf("%w: resting heart rate out of range", ErrInvalidActivity)
	}
	if err := s.repo.AddRestingHR(ctx, userID, date, heartRate); err != nil {
		return err
	}
	s.invalidateMetrics(ctx, userID)
	return nil
}
