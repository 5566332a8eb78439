package trainingload_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tron2005/markvera/internal/trainingload"
)

func TestDecay_Empty(t *testing.T) {
	assert.Nil(t, trainingload.Decay(nil))
}

func TestDecay_SeedsWithFirstDay(t *testing.T) {
	points := trainingload.Decay([]float64{120, 0})
	require.Len(t, points, 2)

	assert.Equal(t, 120.0, points[0].ATL)
	assert.Equal(t, 120.0, points[0].CTL)
	assert.Nil(t, points[0].TSB)

	assert.InDelta(t, 120*math.Exp(-1.0/7), points[1].ATL, 1e-9)
	assert.InDelta(t, 120*math.Exp(-1.0/42), points[1].CTL, 1e-9)
	require.NotNil(t, points[1].TSB)
	assert.Equal(t, 0.0, *points[1].TSB)
}

func TestDecay_AllZero(t *testing.T) {
	for i, p := range trainingload.Decay(make([]float64, 100)) {
		assert.Zero(t, p.ATL)
		assert.Zero(t, p.CTL)
		if i > 0 {
			assert.Zero(t, *p.TSB)
		}
	}
}

func TestDecay_ConstantLoadConverges(t *testing.T) {
	const load = 85.5
	loads := make([]float64, 200)
	for i := range loads {
		loads[i] = load
	}

	points := trainingload.Decay(loads)
	last := points[len(points)-1]
	assert.InDelta(t, load, last.ATL, 1e-6)
	assert.InDelta(t, load, last.CTL, 1e-6)

	// starting from rest the recursion still converges
	loads = make([]float64, 1200)
	for i := 1; i < len(loads); i++ {
		loads[i] = load
	}
	points = trainingload.Decay(loads)
	last = points[len(points)-1]
	assert.InDelta(t, load, last.ATL, 1e-6)
	assert.InDelta(t, load, last.CTL, 1e-6)
	assert.InDelta(t, 0, *last.TSB, 1e-6)
}

func TestDecay_TSBIdentity(t *testing.T) {
	loads := []float64{0, 50, 140, 0, 0, 220, 35, 90, 0, 310, 15}
	points := trainingload.Decay(loads)
	for i := 1; i < len(points); i++ {
		assert.Equal(t, points[i-1].CTL-points[i-1].ATL, *points[i].TSB)
	}
}

func TestDecay_ATLReactsFasterThanCTL(t *testing.T) {
	points := trainingload.Decay([]float64{0, 100, 100, 100})
	for _, p := range points[1:] {
		assert.Greater(t, p.ATL, p.CTL)
	}
}
