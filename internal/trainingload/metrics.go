package trainingload

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Options struct {
	// AsOf extends the daily axis up to its date and drops sessions after it.
	AsOf *time.Time
	// Location defines calendar days. Defaults to UTC.
	Location *time.Location
	// Logger receives fallback notices. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

type DailyMetric struct {
	Date          Date     `json:"date"`
	Load          float64  `json:"load"`
	SessionCount  int      `json:"sessionCount"`
	ATL           float64  `json:"atl"`
	CTL           float64  `json:"ctl"`
	TSB           *float64 `json:"tsb"`
	VO2max        *float64 `json:"vo2max,omitempty"`
	VO2maxClamped bool     `json:"vo2maxClamped,omitempty"`
	LowConfidence bool     `json:"lowConfidence"`
}

type MetricsResult struct {
	Daily    []DailyMetric     `json:"daily"`
	Weekly   []WeeklyMetric    `json:"weekly"`
	Aerobic  []AerobicEstimate `json:"aerobic,omitempty"`
	Sessions []SessionLoad     `json:"sessions,omitempty"`
	Profile  ResolvedProfile   `json:"profile"`
}

func (r MetricsResult) Empty() bool {
	return len(r.Daily) == 0
}

// LowConfidenceDays counts days whose load was estimated without heart rate.
func (r MetricsResult) LowConfidenceDays() int {
	count := 0
	for _, d := range r.Daily {
		if d.LowConfidence {
			count++
		}
	}
	return count
}

// ComputeMetrics turns sessions and a profile into daily and weekly training
// load metrics. It is pure: inputs are not mutated and identical inputs give
// identical output. An empty (or fully filtered) session list gives an empty result.
func ComputeMetrics(sessions []Session, profile Profile, opts Options) MetricsResult {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	normalized := Normalize(sessions)

	var end *Date
	if opts.AsOf != nil {
		asOf := DateOf(*opts.AsOf, loc)
		end = &asOf
		kept := normalized[:0]
		for _, s := range normalized {
			if !DateOf(s.Start, loc).After(asOf) {
				kept = append(kept, s)
			}
		}
		normalized = kept
	}

	if len(normalized) == 0 {
		return MetricsResult{}
	}

	rp := ResolveProfile(profile, logger)
	sessionLoads := EstimateLoads(normalized, rp, loc)
	daily := AggregateDaily(sessionLoads, end)

	impulses := make([]float64, len(daily))
	for i, d := range daily {
		impulses[i] = d.Impulse
	}
	decay := Decay(impulses)
	aerobic := EstimateAerobic(normalized, rp, loc)

	metrics := make([]DailyMetric, len(daily))
	nextEstimate := 0
	var current *AerobicEstimate
	for i, d := range daily {
		for nextEstimate < len(aerobic) && !aerobic[nextEstimate].Date.After(d.Date) {
			current = &aerobic[nextEstimate]
			nextEstimate++
		}

		m := DailyMetric{
			Date:          d.Date,
			Load:          d.Impulse,
			SessionCount:  d.SessionCount,
			ATL:           decay[i].ATL,
			CTL:           decay[i].CTL,
			TSB:           decay[i].TSB,
			LowConfidence: d.LowConfidence,
		}
		if current != nil {
			vo2 := current.Value
			m.VO2max = &vo2
			m.VO2maxClamped = current.Clamped
		}
		metrics[i] = m
	}

	result := MetricsResult{
		Daily:    metrics,
		Weekly:   WeeklyStats(daily),
		Aerobic:  aerobic,
		Sessions: sessionLoads,
		Profile:  rp,
	}

	if lowConfidence := result.LowConfidenceDays(); lowConfidence > 0 {
		logger.Debugf("training load: %d of %d days estimated without heart rate", lowConfidence, len(metrics))
	}

	return result
}
