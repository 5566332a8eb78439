package trainingload

import (
	"math"
)

// MonotonyWarningThreshold marks weeks with too little variation between days.
const MonotonyWarningThreshold = 2.0

type Form string

const (
	FormDetraining   Form = "detraining"
	FormFresh        Form = "fresh"
	FormNeutral      Form = "neutral"
	FormProductive   Form = "productive"
	FormOverreaching Form = "overreaching"
	FormUnknown      Form = "unknown"
)

// FormFor classifies a training stress balance value.
func FormFor(tsb *float64) Form {
	if tsb == nil {
		return FormUnknown
	}
	switch v := *tsb; {
	case v > 25:
		return FormDetraining
	case v > 5:
		return FormFresh
	case v > -10:
		return FormNeutral
	case v > -30:
		return FormProductive
	default:
		return FormOverreaching
	}
}

// Summary is the latest state of the metrics, as shown on the dashboard.
type Summary struct {
	AsOf            Date     `json:"asOf"`
	CTL             float64  `json:"ctl"`
	ATL             float64  `json:"atl"`
	TSB             *float64 `json:"tsb"`
	Form            Form     `json:"form"`
	VO2max          *float64 `json:"vo2max,omitempty"`
	VO2maxClamped   bool     `json:"vo2maxClamped,omitempty"`
	WeekStart       Date     `json:"weekStart"`
	WeekLoad        float64  `json:"weekLoad"`
	Monotony        *float64 `json:"monotony,omitempty"`
	Strain          *float64 `json:"strain,omitempty"`
	MonotonyWarning bool     `json:"monotonyWarning"`
	// MarathonShape uses CTL as a 0-100 readiness score.
	MarathonShape int `json:"marathonShape"`
}

// Summarize reports the last day of the result together with the latest full
// week (or the latest week when none is complete). An empty result gives a
// zero Summary with FormUnknown.
func Summarize(r MetricsResult) Summary {
	if r.Empty() {
		return Summary{Form: FormUnknown}
	}

	last := r.Daily[len(r.Daily)-1]
	s := Summary{
		AsOf:          last.Date,
		CTL:           last.CTL,
		ATL:           last.ATL,
		TSB:           last.TSB,
		Form:          FormFor(last.TSB),
		VO2max:        last.VO2max,
		VO2maxClamped: last.VO2maxClamped,
		MarathonShape: int(math.Max(0, math.Min(100, math.Round(last.CTL)))),
	}

	if week, ok := latestWeek(r.Weekly); ok {
		s.WeekStart = week.WeekStart
		s.WeekLoad = week.TotalLoad
		s.Monotony = week.Monotony
		s.Strain = week.Strain
		s.MonotonyWarning = week.Monotony != nil && *week.Monotony > MonotonyWarningThreshold
	}

	return s
}

func latestWeek(weeks []WeeklyMetric) (WeeklyMetric, bool) {
	for i := len(weeks) - 1; i >= 0; i-- {
		if weeks[i].Days == daysPerWeek {
			return weeks[i], true
		}
	}
	if len(weeks) == 0 {
		return WeeklyMetric{}, false
	}
	return weeks[len(weeks)-1], true
}
