package trainingload

import (
	"gonum.org/v1/gonum/stat"
)

const daysPerWeek = 7

// WeeklyMetric summarizes one Monday aligned week.
// Monotony and Strain are nil when the week's daily loads have no variance.
type WeeklyMetric struct {
	WeekStart Date     `json:"weekStart"`
	TotalLoad float64  `json:"totalLoad"`
	Monotony  *float64 `json:"monotony,omitempty"`
	Strain    *float64 `json:"strain,omitempty"`
	// Days is the number of the week's days that lie on the daily axis.
	Days int `json:"days"`
}

// WeeklyStats computes totalLoad, monotony and strain for every week touched
// by the daily axis. Days of a week outside the axis count as zero load.
func WeeklyStats(daily []DailyLoad) []WeeklyMetric {
	if len(daily) == 0 {
		return nil
	}

	first := daily[0].Date
	weekStart := first.WeekStart()
	lastWeek := daily[len(daily)-1].Date.WeekStart()

	var weeks []WeeklyMetric
	for ; !weekStart.After(lastWeek); weekStart = weekStart.AddDays(daysPerWeek) {
		values := make([]float64, daysPerWeek)
		w := WeeklyMetric{WeekStart: weekStart}
		for i := range values {
			idx := weekStart.AddDays(i).DaysSince(first)
			if idx < 0 || idx >= len(daily) {
				continue
			}
			values[i] = daily[idx].Impulse
			w.TotalLoad += values[i]
			w.Days++
		}
		w.Monotony, w.Strain = variability(values, w.TotalLoad)
		weeks = append(weeks, w)
	}

	return weeks
}

// variability returns mean/stddev and total*monotony over a week.
// A week of identical values yields nil regardless of the computed stddev.
func variability(values []float64, total float64) (monotony, strain *float64) {
	if allEqual(values) {
		return nil, nil
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if std == 0 || !isFinite(std) {
		return nil, nil
	}
	m := mean / std
	s := total * m
	return &m, &s
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
