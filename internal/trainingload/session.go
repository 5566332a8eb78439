package trainingload

import (
	"math"
	"time"
)

const (
	SourceStrava = "strava"
	SourceGarmin = "garmin"
	SourceManual = "manual"
	SourceFIT    = "fit"
)

// Session is one completed activity in canonical form.
type Session struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	SourceID        string    `json:"sourceId"`
	Start           time.Time `json:"start"`
	DurationSeconds float64   `json:"durationSeconds"`
	Sport           SportType `json:"sport"`
	DistanceMeters  *float64  `json:"distanceMeters,omitempty"`
	AvgHeartRate    *float64  `json:"avgHeartRate,omitempty"`
	MaxHeartRate    *float64  `json:"maxHeartRate,omitempty"`
}

func SessionID(source, sourceID string) string {
	return source + ":" + sourceID
}

// key identifies s for de-duplication. Sessions without provenance fall back
// to their ID, and sessions with no identity at all are never merged.
func (s Session) key(index int) sessionKey {
	switch {
	case s.Source != "" || s.SourceID != "":
		return sessionKey{source: s.Source, sourceID: s.SourceID}
	case s.ID != "":
		return sessionKey{id: s.ID}
	default:
		return sessionKey{anonymous: index + 1}
	}
}

func (s Session) valid() bool {
	return !s.Start.IsZero() && isFinite(s.DurationSeconds) && s.DurationSeconds > 0
}

func (s Session) minutes() float64 {
	return s.DurationSeconds / 60
}

func (s Session) hasHeartRate() bool {
	return positive(s.AvgHeartRate) != nil
}

func (s Session) hasDistance() bool {
	return positive(s.DistanceMeters) != nil
}

type sessionKey struct {
	source    string
	sourceID  string
	id        string
	anonymous int
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// positive returns v when it points to a finite value above zero, nil otherwise.
func positive(v *float64) *float64 {
	if v == nil || !isFinite(*v) || *v <= 0 {
		return nil
	}
	return v
}

func Float(v float64) *float64 {
	return &v
}
