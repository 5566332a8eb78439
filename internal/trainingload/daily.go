package trainingload

// DailyLoad is the summed impulse of one calendar day.
type DailyLoad struct {
	Date          Date    `json:"date"`
	Impulse       float64 `json:"impulse"`
	SessionCount  int     `json:"sessionCount"`
	LowConfidence bool    `json:"lowConfidence"`
}

// AggregateDaily buckets session loads by date onto a contiguous axis running
// from the first load date to the last one, or to end when end is later.
// Loads dated after end are ignored. Days without sessions get zero impulse.
func AggregateDaily(loads []SessionLoad, end *Date) []DailyLoad {
	var first, last Date
	byDate := make(map[Date]*DailyLoad)
	for _, l := range loads {
		if end != nil && l.Date.After(*end) {
			continue
		}
		if first.IsZero() || l.Date.Before(first) {
			first = l.Date
		}
		if last.IsZero() || l.Date.After(last) {
			last = l.Date
		}

		day, ok := byDate[l.Date]
		if !ok {
			day = &DailyLoad{Date: l.Date}
			byDate[l.Date] = day
		}
		day.Impulse += l.Impulse
		day.SessionCount++
		day.LowConfidence = day.LowConfidence || l.LowConfidence
	}

	if first.IsZero() {
		return nil
	}
	if end != nil && end.After(last) {
		last = *end
	}

	daily := make([]DailyLoad, 0, last.DaysSince(first)+1)
	for d := first; !d.After(last); d = d.AddDays(1) {
		if day, ok := byDate[d]; ok {
			daily = append(daily, *day)
			continue
		}
		daily = append(daily, DailyLoad{Date: d})
	}

	return daily
}
