package trainingload

import (
	"strings"
)

type SportType int

const (
	SportOther SportType = iota
	SportRun
	SportWalk
	SportRide
	SportSwim
	SportStrength
	SportCombat
)

var sportNames = map[SportType]string{
	SportOther:    "other",
	SportRun:      "run",
	SportWalk:     "walk",
	SportRide:     "ride",
	SportSwim:     "swim",
	SportStrength: "strength",
	SportCombat:   "combat",
}

// sportAliases maps provider activity types (Strava, Garmin, FIT, manual entry)
// to sports. Keys are normalized by sportKey.
var sportAliases = map[string]SportType{
	// runs
	"run":              SportRun,
	"running":          SportRun,
	"trailrun":         SportRun,
	"trailrunning":     SportRun,
	"virtualrun":       SportRun,
	"treadmillrun":     SportRun,
	"treadmillrunning": SportRun,
	"streetrunning":    SportRun,
	"indoorrunning":    SportRun,
	// walks
	"walk":    SportWalk,
	"walking": SportWalk,
	"hike":    SportWalk,
	"hiking":  SportWalk,
	// rides
	"ride":             SportRide,
	"cycling":          SportRide,
	"biking":           SportRide,
	"virtualride":      SportRide,
	"ebikeride":        SportRide,
	"mountainbikeride": SportRide,
	"gravelride":       SportRide,
	"roadbiking":       SportRide,
	"mountainbiking":   SportRide,
	"indoorcycling":    SportRide,
	"gravelcycling":    SportRide,
	// swims
	"swim":              SportSwim,
	"swimming":          SportSwim,
	"lapswimming":       SportSwim,
	"openwaterswimming": SportSwim,
	// strength
	"strength":         SportStrength,
	"strengthtraining": SportStrength,
	"weighttraining":   SportStrength,
	"training":         SportStrength,
	"crossfit":         SportStrength,
	"gym":              SportStrength,
	// combat
	"combat":           SportCombat,
	"bodycombat":       SportCombat,
	"boxing":           SportCombat,
	"kickboxing":       SportCombat,
	"martialarts":      SportCombat,
	"mixedmartialarts": SportCombat,
	"other":            SportOther,
}

var sportKeyReplacer = strings.NewReplacer(" ", "", "_", "", "-", "")

func sportKey(s string) string {
	return sportKeyReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// ParseSportType maps a provider activity type to a sport.
// Unknown or empty values map to SportOther.
func ParseSportType(s string) SportType {
	if sport, ok := sportAliases[sportKey(s)]; ok {
		return sport
	}
	return SportOther
}

func (s SportType) String() string {
	if name, ok := sportNames[s]; ok {
		return name
	}
	return sportNames[SportOther]
}

func (s SportType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SportType) UnmarshalText(text []byte) error {
	*s = ParseSportType(string(text))
	return nil
}
