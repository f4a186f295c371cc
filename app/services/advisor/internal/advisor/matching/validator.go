package matching

// QualityThreshold is the minimum score a recommendation must strictly
// exceed to reach the user (2 out of 6 possible points).
const QualityThreshold = 2

// Validate keeps only matches scoring strictly above QualityThreshold.
// Sentinel results never pass. An empty return means "no sufficiently good
// match", which callers must message differently from "none within budget".
func Validate(results []Match) []Match {
	validated := make([]Match, 0, len(results))
	for _, m := range results {
		if m.Message != "" {
			continue
		}
		if m.Score > QualityThreshold {
			validated = append(validated, m)
		}
	}
	return validated
}
