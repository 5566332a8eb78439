package trainingload

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultRestingHR is used when the profile carries no resting heart rate.
	DefaultRestingHR = 60.0
	// DefaultMaxHR is used when neither max heart rate nor age is known.
	DefaultMaxHR = 190.0
	// ageMaxHRIntercept gives the age based estimate maxHR = 220 - age.
	ageMaxHRIntercept = 220.0
)

type Sex string

const (
	SexUnspecified Sex = ""
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
)

func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "man", "muž", "muz":
		return SexMale
	case "f", "female", "woman", "žena", "zena":
		return SexFemale
	default:
		return SexUnspecified
	}
}

// Profile holds the athlete attributes the estimators depend on.
// Version only feeds cache keys of callers and is never read here.
type Profile struct {
	MaxHR     *float64 `json:"maxHr,omitempty"`
	RestingHR *float64 `json:"restingHr,omitempty"`
	Sex       Sex      `json:"sex,omitempty"`
	AgeYears  *int     `json:"ageYears,omitempty"`
	Version   int64    `json:"version,omitempty"`
}

// ResolvedProfile is a Profile with every fallback applied and flagged.
type ResolvedProfile struct {
	MaxHR             float64 `json:"maxHr"`
	RestingHR         float64 `json:"restingHr"`
	Male              bool    `json:"male"`
	MaxHRFallback     bool    `json:"maxHrFallback"`
	RestingHRFallback bool    `json:"restingHrFallback"`
	SexFallback       bool    `json:"sexFallback"`
}

// ResolveProfile applies the documented fallbacks: maxHR = 220 - age (or
// DefaultMaxHR without an age), restingHR = DefaultRestingHR, and the male
// impulse coefficients when sex is not given. Each fallback is logged.
func ResolveProfile(p Profile, logger logrus.FieldLogger) ResolvedProfile {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var rp ResolvedProfile

	switch {
	case positive(p.MaxHR) != nil:
		rp.MaxHR = *p.MaxHR
	case p.AgeYears != nil && *p.AgeYears > 0 && *p.AgeYears < 120:
		rp.MaxHR = ageMaxHRIntercept - float64(*p.AgeYears)
		rp.MaxHRFallback = true
		logger.Warnf("max heart rate missing, using 220 - age = %.0f", rp.MaxHR)
	default:
		rp.MaxHR = DefaultMaxHR
		rp.MaxHRFallback = true
		logger.Warnf("max heart rate and age missing, using default max heart rate %.0f", rp.MaxHR)
	}

	if positive(p.RestingHR) != nil {
		rp.RestingHR = *p.RestingHR
	} else {
		rp.RestingHR = DefaultRestingHR
		rp.RestingHRFallback = true
		logger.Warnf("resting heart rate missing, using default %.0f", rp.RestingHR)
	}

	switch p.Sex {
	case SexMale:
		rp.Male = true
	case SexFemale:
		rp.Male = false
	default:
		rp.Male = true
		rp.SexFallback = true
		logger.Debugf("sex not set, using male impulse coefficients")
	}

	if !rp.hasHeartRateReserve() {
		logger.Warnf("invalid heart rate range: max %.0f <= resting %.0f, heart rate based load disabled", rp.MaxHR, rp.RestingHR)
	}

	return rp
}

func (rp ResolvedProfile) hasHeartRateReserve() bool {
	return rp.MaxHR > rp.RestingHR && rp.RestingHR > 0
}
