package trainingload

import (
	"math"
)

// Banister time constants in days. They are fixed model parameters.
const (
	ATLTimeConstant = 7.0
	CTLTimeConstant = 42.0
)

var (
	atlAlpha = 1 - math.Exp(-1/ATLTimeConstant)
	ctlAlpha = 1 - math.Exp(-1/CTLTimeConstant)
)

type DecayPoint struct {
	ATL float64
	CTL float64
	// TSB is yesterday's CTL minus yesterday's ATL, nil on the first day.
	TSB *float64
}

// Decay runs the ATL/CTL recursion over daily loads, seeding both series with
// the first day's load.
func Decay(loads []float64) []DecayPoint {
	if len(loads) == 0 {
		return nil
	}

	points := make([]DecayPoint, len(loads))
	points[0] = DecayPoint{ATL: loads[0], CTL: loads[0]}
	for t := 1; t < len(loads); t++ {
		prev := points[t-1]
		tsb := prev.CTL - prev.ATL
		points[t] = DecayPoint{
			ATL: prev.ATL + (loads[t]-prev.ATL)*atlAlpha,
			CTL: prev.CTL + (loads[t]-prev.CTL)*ctlAlpha,
			TSB: &tsb,
		}
	}

	return points
}
