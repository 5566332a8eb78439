package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/tron2005/markvera/internal/trainingload"
)

const keyPrefix = "trainingload:metrics:"

// MetricsCache stores computed metrics by Key. A miss is reported with ok == false
// and a nil error.
type MetricsCache interface {
	Get(ctx context.Context, key string) (_ trainingload.MetricsResult, ok bool, err error)
	Set(ctx context.Context, key string, result trainingload.MetricsResult, ttl time.Duration) error
}

// KeyParams is everything a computation depends on.
type KeyParams struct {
	UserID   string
	Sessions []trainingload.Session
	Profile  trainingload.Profile
	AsOf     *time.Time
	Location *time.Location
}

// Key derives the cache key for params. The profile version is part of the
// hash, so bumping it invalidates every cached result of the user.
func Key(params KeyParams) (string, error) {
	digest := xxhash.New()

	loc := "UTC"
	if params.Location != nil {
		loc = params.Location.String()
	}
	var asOf string
	if params.AsOf != nil {
		asOf = params.AsOf.UTC().Format(time.RFC3339Nano)
	}

	err := json.NewEncoder(digest).Encode(struct {
		Sessions []trainingload.Session `json:"s"`
		Profile  trainingload.Profile   `json:"p"`
		Version  int64                  `json:"v"`
		AsOf     string                 `json:"a"`
		Location string                 `json:"l"`
	}{
		Sessions: params.Sessions,
		Profile:  params.Profile,
		Version:  params.Profile.Version,
		AsOf:     asOf,
		Location: loc,
	})
	if err != nil {
		return "", err
	}

	var sum [8]byte
	return keyPrefix + params.UserID + ":" + hex.EncodeToString(digest.Sum(sum[:0])), nil
}

var errEmptyKey = errors.New("empty cache key")

func encode(result trainingload.MetricsResult) ([]byte, error) {
	return json.Marshal(result)
}

func decode(raw []byte) (trainingload.MetricsResult, error) {
	var result trainingload.MetricsResult
	err := json.Unmarshal(raw, &result)
	return result, err
}
