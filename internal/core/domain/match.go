package domain

// Match pairs an animal with its similarity score.
type Match struct {
	// Animal is a copy of the matched catalog record.
	Animal Animal `json:"animal"`

	// Score is the similarity percentage, 0 to 100, rounded to 3 decimals.
	Score float64 `json:"match_score"`
}

// MatchResult is a ranked list of matches, highest score first.
// It is produced fresh per request and shares no state with the engine.
type MatchResult struct {
	// Matches holds at most k entries in descending score order.
	Matches []Match `json:"matches"`

	// Query is the natural-language text that was embedded.
	Query string `json:"query"`

	// Fallback is true when no animal passed the species filter and the
	// zero-score fallback list was returned instead.
	Fallback bool `json:"fallback"`

	// Degraded is true when the embedding provider was running without its encoder.
	Degraded bool `json:"degraded"`
}

// Len returns the number of matches.
func (r *MatchResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Matches)
}

// IDs returns the matched animal IDs in rank order.
func (r *MatchResult) IDs() []int64 {
	ids := make([]int64, len(r.Matches))
	for i := range r.Matches {
		ids[i] = r.Matches[i].Animal.ID
	}
	return ids
}
