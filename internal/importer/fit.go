package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/tormoder/fit"

	"github.com/tron2005/markvera/internal/trainingload"
)

var (
	ErrNoSession   = errors.New("fit file has no session")
	ErrNotActivity = errors.New("fit file is not an activity")
	ErrEmptyFile   = errors.New("empty fit file")
)

// DecodeFIT reads an activity FIT file and returns its first session as a
// FitActivity. FileID is derived from the file content.
func DecodeFIT(r io.Reader) (trainingload.FitActivity, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return trainingload.FitActivity{}, fmt.Errorf("read fit file: %w", err)
	}
	if len(raw) == 0 {
		return trainingload.FitActivity{}, ErrEmptyFile
	}

	decoded, err := fit.Decode(bytes.NewReader(raw))
	if err != nil {
		return trainingload.FitActivity{}, fmt.Errorf("decode fit file: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return trainingload.FitActivity{}, fmt.Errorf("%w: %s", ErrNotActivity, err)
	}
	if len(activity.Sessions) == 0 {
		return trainingload.FitActivity{}, ErrNoSession
	}
	session := activity.Sessions[0]

	result := trainingload.FitActivity{
		FileID: fileID(raw),
		Sport:  sportName(session.Sport, session.SubSport),
		Start:  validTime(session.StartTime),
	}
	if result.Start.IsZero() && len(activity.Records) > 0 {
		result.Start = validTime(activity.Records[0].Timestamp)
	}
	if result.Start.IsZero() {
		return trainingload.FitActivity{}, fmt.Errorf("%w: missing start time", ErrNoSession)
	}

	result.TimerSeconds = finitePositive(session.GetTotalTimerTimeScaled())
	if result.TimerSeconds == 0 {
		result.TimerSeconds = finitePositive(session.GetTotalElapsedTimeScaled())
	}

	if distance := finitePositive(session.GetTotalDistanceScaled()); distance > 0 {
		result.DistanceMeters = trainingload.Float(distance)
	}

	avgHR, maxHR := validHeartRate(session.AvgHeartRate), validHeartRate(session.MaxHeartRate)
	if avgHR == 0 || maxHR == 0 {
		recordAvg, recordMax := recordHeartRate(activity.Records)
		if avgHR == 0 {
			avgHR = recordAvg
		}
		if maxHR == 0 {
			maxHR = recordMax
		}
	}
	if avgHR > 0 {
		result.AvgHeartRate = trainingload.Float(avgHR)
	}
	if maxHR > 0 {
		result.MaxHeartRate = trainingload.Float(maxHR)
	}

	return result, nil
}

func fileID(raw []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(raw))
}

func sportName(sport fit.Sport, subSport fit.SubSport) string {
	name := strings.TrimPrefix(sport.String(), "Sport")
	switch subSport {
	case fit.SubSportTrail:
		if sport == fit.SportRunning {
			return "TrailRun"
		}
	case fit.SubSportTreadmill:
		if sport == fit.SportRunning {
			return "TreadmillRun"
		}
	case fit.SubSportStrengthTraining:
		return "StrengthTraining"
	}
	return name
}

func validTime(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}

func validHeartRate(v uint8) float64 {
	if v == math.MaxUint8 || v == 0 {
		return 0
	}
	return float64(v)
}

func recordHeartRate(records []*fit.RecordMsg) (avg, max float64) {
	var sum float64
	var count int
	for _, rec := range records {
		hr := validHeartRate(rec.HeartRate)
		if hr == 0 {
			continue
		}
		sum += hr
		count++
		if hr > max {
			max = hr
		}
	}
	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), max
}

func finitePositive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}
