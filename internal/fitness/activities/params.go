package activities

import (
	"fmt"
	"net/url"
	"time"

	"github.com/tron2005/markvera/internal/trainingload"
)

// ParseRange reads the optional from and to query params (YYYY-MM-DD, both
// inclusive) as calendar days in loc.
func ParseRange(query url.Values, loc *time.Location) (Range, error) {
	var rng Range
	if fromStr := query.Get("from"); fromStr != "" {
		from, err := trainingload.ParseDate(fromStr)
		if err != nil {
			return Range{}, fmt.Errorf("invalid from date: %w", err)
		}
		start := dayStart(from, loc)
		rng.From = &start
	}
	if toStr := query.Get("to"); toStr != "" {
		to, err := trainingload.ParseDate(toStr)
		if err != nil {
			return Range{}, fmt.Errorf("invalid to date: %w", err)
		}
		end := dayStart(to.AddDays(1), loc).Add(-time.Nanosecond)
		rng.To = &end
	}
	if rng.From != nil && rng.To != nil && rng.To.Before(*rng.From) {
		return Range{}, fmt.Errorf("from date after to date")
	}
	return rng, nil
}

func dayStart(d trainingload.Date, loc *time.Location) time.Time {
	t := d.Time()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
