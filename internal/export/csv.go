package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/tron2005/markvera/internal/trainingload"
)

var dailyHeader = []string{
	"date", "load", "session_count", "atl", "ctl", "tsb", "vo2max", "vo2max_clamped", "low_confidence",
}

// WriteDailyCSV writes the daily series with a header row. Missing values
// (TSB of the first day, VO2max before the first estimate) are empty cells.
func WriteDailyCSV(w io.Writer, daily []trainingload.DailyMetric) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dailyHeader); err != nil {
		return err
	}
	for _, d := range daily {
		record := []string{
			d.Date.String(),
			formatFloat(d.Load),
			strconv.Itoa(d.SessionCount),
			formatFloat(d.ATL),
			formatFloat(d.CTL),
			formatOptional(d.TSB),
			formatOptional(d.VO2max),
			strconv.FormatBool(d.VO2maxClamped),
			strconv.FormatBool(d.LowConfidence),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var weeklyHeader = []string{"week_start", "total_load", "monotony", "strain", "days"}

func WriteWeeklyCSV(w io.Writer, weekly []trainingload.WeeklyMetric) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(weeklyHeader); err != nil {
		return err
	}
	for _, wk := range weekly {
		record := []string{
			wk.WeekStart.String(),
			formatFloat(wk.TotalLoad),
			formatOptional(wk.Monotony),
			formatOptional(wk.Strain),
			strconv.Itoa(wk.Days),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
