package trainingload

import (
	"strconv"
	"time"
)

// SourceRecord is a provider specific activity row as fetched by the data layer.
// The set of implementations is closed: StravaActivity, GarminActivity,
// ManualActivity and FitActivity.
type SourceRecord interface {
	toSession() (Session, bool)
}

// StravaActivity mirrors a row of the strava_activities table.
type StravaActivity struct {
	ID                int64
	ActivityType      string
	StartDate         time.Time
	DistanceMeters    *float64
	MovingTimeSeconds int
	AverageHeartrate  *float64
	MaxHeartrate      *float64
}

func (a StravaActivity) toSession() (Session, bool) {
	if a.StartDate.IsZero() {
		return Session{}, false
	}
	sourceID := strconv.FormatInt(a.ID, 10)
	return Session{
		ID:              SessionID(SourceStrava, sourceID),
		Source:          SourceStrava,
		SourceID:        sourceID,
		Start:           a.StartDate,
		DurationSeconds: float64(a.MovingTimeSeconds),
		Sport:           ParseSportType(a.ActivityType),
		DistanceMeters:  positive(a.DistanceMeters),
		AvgHeartRate:    positive(a.AverageHeartrate),
		MaxHeartRate:    positive(a.MaxHeartrate),
	}, true
}

// GarminActivity mirrors a row of the garmin_activities table. Garmin exports
// report distance in kilometers.
type GarminActivity struct {
	ID              string
	ActivityType    string
	StartDate       time.Time
	DistanceKm      *float64
	DurationSeconds float64
	AvgHeartRate    *float64
	MaxHeartRate    *float64
}

func (a GarminActivity) toSession() (Session, bool) {
	if a.StartDate.IsZero() || a.ID == "" {
		return Session{}, false
	}
	var distance *float64
	if km := positive(a.DistanceKm); km != nil {
		distance = Float(*km * 1000)
	}
	return Session{
		ID:              SessionID(SourceGarmin, a.ID),
		Source:          SourceGarmin,
		SourceID:        a.ID,
		Start:           a.StartDate,
		DurationSeconds: a.DurationSeconds,
		Sport:           ParseSportType(a.ActivityType),
		DistanceMeters:  distance,
		AvgHeartRate:    positive(a.AvgHeartRate),
		MaxHeartRate:    positive(a.MaxHeartRate),
	}, true
}

// ManualActivity is an activity entered by hand.
type ManualActivity struct {
	ID              string
	Sport           string
	Start           time.Time
	DurationSeconds float64
	DistanceMeters  *float64
	AvgHeartRate    *float64
	MaxHeartRate    *float64
}

func (a ManualActivity) toSession() (Session, bool) {
	if a.Start.IsZero() || a.ID == "" {
		return Session{}, false
	}
	return Session{
		ID:              SessionID(SourceManual, a.ID),
		Source:          SourceManual,
		SourceID:        a.ID,
		Start:           a.Start,
		DurationSeconds: a.DurationSeconds,
		Sport:           ParseSportType(a.Sport),
		DistanceMeters:  positive(a.DistanceMeters),
		AvgHeartRate:    positive(a.AvgHeartRate),
		MaxHeartRate:    positive(a.MaxHeartRate),
	}, true
}

// FitActivity is the session summary decoded from a FIT file.
// FileID identifies the file content, so re-importing a file dedupes.
type FitActivity struct {
	FileID         string
	Sport          string
	Start          time.Time
	TimerSeconds   float64
	DistanceMeters *float64
	AvgHeartRate   *float64
	MaxHeartRate   *float64
}

func (a FitActivity) toSession() (Session, bool) {
	if a.Start.IsZero() || a.FileID == "" {
		return Session{}, false
	}
	return Session{
		ID:              SessionID(SourceFIT, a.FileID),
		Source:          SourceFIT,
		SourceID:        a.FileID,
		Start:           a.Start,
		DurationSeconds: a.TimerSeconds,
		Sport:           ParseSportType(a.Sport),
		DistanceMeters:  positive(a.DistanceMeters),
		AvgHeartRate:    positive(a.AvgHeartRate),
		MaxHeartRate:    positive(a.MaxHeartRate),
	}, true
}

// FromRecords maps source records to sessions, skipping records that lack an
// identity or a start time. The result is not yet de-duplicated; see Normalize.
func FromRecords(records []SourceRecord) []Session {
	sessions := make([]Session, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if s, ok := r.toSession(); ok {
			sessions = append(sessions, s)
		}
	}
	return sessions
}
