package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the activity and athlete tables. Strava and Garmin rows are
// written by the sync jobs, the service itself only writes manual and FIT
// activities, profiles and resting heart rates.
const Schema = `
CREATE TABLE IF NOT EXISTS strava_activities
(
    id                  BIGINT      NOT NULL,
    user_id             VARCHAR     NOT NULL,
    activity_type       VARCHAR     NOT NULL DEFAULT '',
    start_date          TIMESTAMPTZ NOT NULL,
    distance_meters     DOUBLE PRECISION,
    moving_time_seconds INTEGER     NOT NULL DEFAULT 0,
    average_heartrate   DOUBLE PRECISION,
    max_heartrate       DOUBLE PRECISION,
    PRIMARY KEY (user_id, id)
);
CREATE INDEX IF NOT EXISTS ix_strava_activities_start ON strava_activities (user_id, start_date);

CREATE TABLE IF NOT EXISTS garmin_activities
(
    id               VARCHAR     NOT NULL,
    user_id          VARCHAR     NOT NULL,
    activity_type    VARCHAR     NOT NULL DEFAULT '',
    start_date       TIMESTAMPTZ NOT NULL,
    distance_km      DOUBLE PRECISION,
    duration_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
    avg_heart_rate   DOUBLE PRECISION,
    max_heart_rate   DOUBLE PRECISION,
    PRIMARY KEY (user_id, id)
);
CREATE INDEX IF NOT EXISTS ix_garmin_activities_start ON garmin_activities (user_id, start_date);

CREATE TABLE IF NOT EXISTS manual_activities
(
    id               BIGSERIAL PRIMARY KEY,
    user_id          VARCHAR     NOT NULL,
    sport            VARCHAR     NOT NULL DEFAULT '',
    start_time       TIMESTAMPTZ NOT NULL,
    duration_seconds DOUBLE PRECISION NOT NULL,
    distance_meters  DOUBLE PRECISION,
    avg_heart_rate   DOUBLE PRECISION,
    max_heart_rate   DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS ix_manual_activities_start ON manual_activities (user_id, start_time);

CREATE TABLE IF NOT EXISTS fit_activities
(
    user_id         VARCHAR     NOT NULL,
    file_id         VARCHAR     NOT NULL,
    sport           VARCHAR     NOT NULL DEFAULT '',
    start_time      TIMESTAMPTZ NOT NULL,
    timer_seconds   DOUBLE PRECISION NOT NULL,
    distance_meters DOUBLE PRECISION,
    avg_heart_rate  DOUBLE PRECISION,
    max_heart_rate  DOUBLE PRECISION,
    PRIMARY KEY (user_id, file_id)
);

CREATE TABLE IF NOT EXISTS profiles
(
    user_id    VARCHAR PRIMARY KEY,
    max_hr     DOUBLE PRECISION,
    resting_hr DOUBLE PRECISION,
    gender     VARCHAR,
    age        INTEGER,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS heart_rate_rest
(
    user_id    VARCHAR          NOT NULL,
    date       DATE             NOT NULL,
    heart_rate DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (user_id, date)
);
`

// Migrate applies Schema. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
