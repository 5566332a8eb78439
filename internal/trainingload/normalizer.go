package trainingload

import (
	"sort"
)

// Normalize de-duplicates sessions by (Source, SourceID), or by ID for
// sessions without a source, keeping the record supplied last, drops sessions without a positive duration and returns the
// rest ordered by start time. The input slice is left untouched.
func Normalize(sessions []Session) []Session {
	lastIndex := make(map[sessionKey]int, len(sessions))
	for i, s := range sessions {
		lastIndex[s.key(i)] = i
	}

	normalized := make([]Session, 0, len(lastIndex))
	for i, s := range sessions {
		if lastIndex[s.key(i)] != i {
			continue
		}
		if !s.valid() {
			continue
		}
		if s.ID == "" && (s.Source != "" || s.SourceID != "") {
			s.ID = SessionID(s.Source, s.SourceID)
		}
		normalized = append(normalized, s)
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		a, b := normalized[i], normalized[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.SourceID != b.SourceID {
			return a.SourceID < b.SourceID
		}
		return a.ID < b.ID
	})

	return normalized
}
