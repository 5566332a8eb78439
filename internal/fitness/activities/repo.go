package activities

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tron2005/markvera/internal/telemetry/tracing"
	"github.com/tron2005/markvera/internal/trainingload"
	"github.com/tron2005/markvera/pkg"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListStrava(ctx context.Context, userID string, rng Range) (_ []trainingload.StravaActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.strava.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user", userID))

	rows, err := r.db.Query(ctx, `
		SELECT id, activity_type, start_date, distance_meters, moving_time_seconds, average_heartrate, max_heartrate
		FROM strava_activities
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR start_date >= $2)
		  AND ($3::timestamptz IS NULL OR start_date <= $3)
		ORDER BY start_date
	`, userID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []trainingload.StravaActivity
	for rows.Next() {
		var a trainingload.StravaActivity
		if err := rows.Scan(
			&a.ID, &a.ActivityType, &a.StartDate, &a.DistanceMeters,
			&a.MovingTimeSeconds, &a.AverageHeartrate, &a.MaxHeartrate,
		); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *Repo) ListGarmin(ctx context.Context, userID string, rng Range) (_ []trainingload.GarminActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.garmin.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user", userID))

	rows, err := r.db.Query(ctx, `
		SELECT id, activity_type, start_date, distance_km, duration_seconds, avg_heart_rate, max_heart_rate
		FROM garmin_activities
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR start_date >= $2)
		  AND ($3::timestamptz IS NULL OR start_date <= $3)
		ORDER BY start_date
	`, userID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []trainingload.GarminActivity
	for rows.Next() {
		var a trainingload.GarminActivity
		if err := rows.Scan(
			&a.ID, &a.ActivityType, &a.StartDate, &a.DistanceKm,
			&a.DurationSeconds, &a.AvgHeartRate, &a.MaxHeartRate,
		); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *Repo) ListManual(ctx context.Context, userID string, rng Range) (_ []trainingload.ManualActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.manual.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user", userID))

	rows, err := r.db.Query(ctx, `
		SELECT id, sport, start_time, duration_seconds, distance_meters, avg_heart_rate, max_heart_rate
		FROM manual_activities
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR start_time >= $2)
		  AND ($3::timestamptz IS NULL OR start_time <= $3)
		ORDER BY start_time, id
	`, userID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []trainingload.ManualActivity
	for rows.Next() {
		var id int64
		var a trainingload.ManualActivity
		if err := rows.Scan(
			&id, &a.Sport, &a.Start, &a.DurationSeconds,
			&a.DistanceMeters, &a.AvgHeartRate, &a.MaxHeartRate,
		); err != nil {
			return nil, err
		}
		a.ID = strconv.FormatInt(id, 10)
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *Repo) ListFit(ctx context.Context, userID string, rng Range) (_ []trainingload.FitActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.fit.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("user", userID))

	rows, err := r.db.Query(ctx, `
		SELECT file_id, sport, start_time, timer_seconds, distance_meters, avg_heart_rate, max_heart_rate
		FROM fit_activities
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR start_time >= $2)
		  AND ($3::timestamptz IS NULL OR start_time <= $3)
		ORDER BY start_time
	`, userID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []trainingload.FitActivity
	for rows.Next() {
		var a trainingload.FitActivity
		if err := rows.Scan(
			&a.FileID, &a.Sport, &a.Start, &a.TimerSeconds,
			&a.DistanceMeters, &a.AvgHeartRate, &a.MaxHeartRate,
		); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListRecords returns the activities of every source, grouped by source in
// the order strava, garmin, manual, fit.
func (r *Repo) ListRecords(ctx context.Context, userID string, rng Range) (_ []trainingload.SourceRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.records.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var records []trainingload.SourceRecord

	strava, err := r.ListStrava(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("list strava: %w", err)
	}
	for _, a := range strava {
		records = append(records, a)
	}

	garmin, err := r.ListGarmin(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("list garmin: %w", err)
	}
	for _, a := range garmin {
		records = append(records, a)
	}

	manual, err := r.ListManual(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("list manual: %w", err)
	}
	for _, a := range manual {
		records = append(records, a)
	}

	fit, err := r.ListFit(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("list fit: %w", err)
	}
	for _, a := range fit {
		records = append(records, a)
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

func (r *Repo) AddManual(ctx context.Context, userID string, entry ManualEntry) (_ ManualEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.manual.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO manual_activities (user_id, sport, start_time, duration_seconds, distance_meters, avg_heart_rate, max_heart_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		userID, entry.Sport, entry.Start, entry.DurationSeconds,
		entry.DistanceMeters, entry.AvgHeartRate, entry.MaxHeartRate,
	).Scan(&id)
	if err != nil {
		return ManualEntry{}, err
	}
	entry.ID = strconv.FormatInt(id, 10)
	return entry, nil
}

func (r *Repo) DeleteManual(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.manual.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrActivityNotFound
	}

	tag, err := r.db.Exec(ctx, `
		DELETE FROM manual_activities
		WHERE user_id = $1 AND id = $2
	`, userID, numericID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *Repo) AddFit(ctx context.Context, userID string, a trainingload.FitActivity) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.fit.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	_, err = r.db.Exec(ctx, `
		INSERT INTO fit_activities (user_id, file_id, sport, start_time, timer_seconds, distance_meters, avg_heart_rate, max_heart_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		userID, a.FileID, a.Sport, a.Start, a.TimerSeconds,
		a.DistanceMeters, a.AvgHeartRate, a.MaxHeartRate,
	)
	if pkg.IsUniqueViolationError(err) {
		return ErrDuplicateActivity
	}
	return err
}

// GetProfile returns the stored athlete profile. Version is the last update
// time in milliseconds.
func (r *Repo) GetProfile(ctx context.Context, userID string) (_ trainingload.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.profile.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var (
		profile   trainingload.Profile
		gender    *string
		updatedAt time.Time
	)
	err = r.db.QueryRow(ctx, `
		SELECT max_hr, resting_hr, gender, age, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&profile.MaxHR, &profile.RestingHR, &gender, &profile.AgeYears, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return trainingload.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return trainingload.Profile{}, err
	}

	if gender != nil {
		profile.Sex = trainingload.ParseSex(*gender)
	}
	profile.Version = updatedAt.UnixMilli()
	return profile, nil
}

func (r *Repo) UpsertProfile(ctx context.Context, userID string, profile trainingload.Profile) (_ trainingload.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.profile.upsert")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var gender *string
	if profile.Sex != trainingload.SexUnspecified {
		g := string(profile.Sex)
		gender = &g
	}

	var updatedAt time.Time
	err = r.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, max_hr, resting_hr, gender, age, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id) DO UPDATE
		SET max_hr = EXCLUDED.max_hr,
		    resting_hr = EXCLUDED.resting_hr,
		    gender = EXCLUDED.gender,
		    age = EXCLUDED.age,
		    updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`, userID, profile.MaxHR, profile.RestingHR, gender, profile.AgeYears).Scan(&updatedAt)
	if err != nil {
		return trainingload.Profile{}, err
	}
	profile.Version = updatedAt.UnixMilli()
	return profile, nil
}

// LatestRestingHR returns the most recent resting heart rate measured on or
// before asOf, nil when there is none.
func (r *Repo) LatestRestingHR(ctx context.Context, userID string, asOf time.Time) (_ *float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.restinghr.latest")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var heartRate float64
	err = r.db.QueryRow(ctx, `
		SELECT heart_rate
		FROM heart_rate_rest
		WHERE user_id = $1 AND date <= $2::date AND heart_rate > 0
		ORDER BY date DESC
		LIMIT 1
	`, userID, asOf).Scan(&heartRate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &heartRate, nil
}

func (r *Repo) AddRestingHR(ctx context.Context, userID string, date trainingload.Date, heartRate float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activities.restinghr.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	_, err = r.db.Exec(ctx, `
		INSERT INTO heart_rate_rest (user_id, date, heart_rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, date) DO UPDATE SET heart_rate = EXCLUDED.heart_rate
	`, userID, date.Time(), heartRate)
	return err
}
