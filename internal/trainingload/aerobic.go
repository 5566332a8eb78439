package trainingload

import (
	"math"
	"sort"
	"time"
)

const (
	VO2maxFloor   = 20.0
	VO2maxCeiling = 85.0

	// uthRatio is the Uth-Sørensen factor in VO2max = 15.3 * maxHR / restingHR.
	uthRatio = 15.3
	// aerobicWindow is the number of trailing sessions the median runs over.
	aerobicWindow = 5
	// minHRReserve keeps very low effort sessions from dividing by ~0.
	minHRReserve = 0.2
)

// paceCurve describes the oxygen cost of moving at speed v (m/min) for a sport,
// cost = 3.5 + slope*v ml/kg/min, and the reference effort at which the
// efficiency factor equals 1.
type paceCurve struct {
	slope    float64
	refSpeed float64 // m/min
	refHRR   float64
}

var paceCurves = map[SportType]paceCurve{
	// ACSM running equation, reference 10 km/h at 70% HRR
	SportRun: {slope: 0.2, refSpeed: 10000.0 / 60, refHRR: 0.70},
	// ACSM walking equation, reference 6 km/h at 40% HRR
	SportWalk: {slope: 0.1, refSpeed: 100, refHRR: 0.40},
	// flat road cycling approximation, reference 25 km/h at 65% HRR
	SportRide: {slope: 0.07, refSpeed: 25000.0 / 60, refHRR: 0.65},
}

// AerobicEstimate is the VO2max proxy after the sessions of Date.
// Raw is the trailing median before clamping.
type AerobicEstimate struct {
	Date    Date    `json:"date"`
	Raw     float64 `json:"raw"`
	Value   float64 `json:"value"`
	Clamped bool    `json:"clamped"`
}

func qualifiesForAerobic(s Session) bool {
	if _, ok := paceCurves[s.Sport]; !ok {
		return false
	}
	return s.hasDistance() && s.hasHeartRate() && s.DurationSeconds > 0
}

// PaceEfficiencyFactor scales the resting/max heart rate estimate by how fast
// the athlete moved relative to how hard the heart worked: the oxygen cost of
// the session speed over the cost of the reference speed, times the reference
// heart rate reserve over the session one.
func PaceEfficiencyFactor(sport SportType, speedMPerMin, hrr float64) float64 {
	curve, ok := paceCurves[sport]
	if !ok {
		return 1
	}
	cost := 3.5 + curve.slope*speedMPerMin
	refCost := 3.5 + curve.slope*curve.refSpeed
	return (cost / refCost) * (curve.refHRR / math.Max(hrr, minHRReserve))
}

// RawVO2max returns the unsmoothed, unclamped estimate of a qualifying session.
func RawVO2max(s Session, rp ResolvedProfile) float64 {
	speed := *s.DistanceMeters / s.minutes()
	hrr := paceCurves[s.Sport].refHRR
	if rp.hasHeartRateReserve() {
		hrr = HeartRateReserve(*s.AvgHeartRate, rp)
	}
	return uthRatio * (rp.MaxHR / rp.RestingHR) * PaceEfficiencyFactor(s.Sport, speed, hrr)
}

// EstimateAerobic emits one estimate per date with qualifying sessions: the
// median of the raw estimates of the last five qualifying sessions, clamped to
// [VO2maxFloor, VO2maxCeiling]. Sessions must be in chronological order.
func EstimateAerobic(sessions []Session, rp ResolvedProfile, loc *time.Location) []AerobicEstimate {
	var (
		estimates []AerobicEstimate
		window    []float64
		pending   Date
	)

	flush := func() {
		if pending.IsZero() {
			return
		}
		raw := median(window)
		value := math.Max(VO2maxFloor, math.Min(VO2maxCeiling, raw))
		estimates = append(estimates, AerobicEstimate{
			Date:    pending,
			Raw:     raw,
			Value:   value,
			Clamped: value != raw,
		})
	}

	for _, s := range sessions {
		if !qualifiesForAerobic(s) {
			continue
		}
		date := DateOf(s.Start, loc)
		if date != pending {
			flush()
			pending = date
		}
		window = append(window, RawVO2max(s, rp))
		if len(window) > aerobicWindow {
			window = window[len(window)-aerobicWindow:]
		}
	}
	flush()

	return estimates
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
