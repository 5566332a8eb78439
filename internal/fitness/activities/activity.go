package activities

import (
	"errors"
	"fmt"
	"time"

	"github.com/tron2005/markvera/internal/trainingload"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrDuplicateActivity = errors.New("activity already imported")
	ErrInvalidActivity   = errors.New("invalid activity")
)

// Range limits listings by activity start. Nil bounds are open.
type Range struct {
	From *time.Time
	To   *time.Time
}

// ManualEntry is an activity entered by hand, as posted by clients.
type ManualEntry struct {
	ID              string    `json:"id,omitempty"`
	Sport           string    `json:"sport"`
	Start           time.Time `json:"start"`
	DurationSeconds float64   `json:"durationSeconds"`
	DistanceMeters  *float64  `json:"distanceMeters,omitempty"`
	AvgHeartRate    *float64  `json:"avgHeartRate,omitempty"`
	MaxHeartRate    *float64  `json:"maxHeartRate,omitempty"`
}

func (e ManualEntry) Validate() error {
	if e.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidActivity)
	}
	if e.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidActivity)
	}
	return nil
}

func (e ManualEntry) record() trainingload.ManualActivity {
	return trainingload.ManualActivity{
		ID:              e.ID,
		Sport:           e.Sport,
		Start:           e.Start,
		DurationSeconds: e.DurationSeconds,
		DistanceMeters:  e.DistanceMeters,
		AvgHeartRate:    e.AvgHeartRate,
		MaxHeartRate:    e.MaxHeartRate,
	}
}
