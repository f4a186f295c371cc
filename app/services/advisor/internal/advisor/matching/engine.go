package matching

import (
	"context"
	"sort"

	"ShopAssistAI/app/services/advisor/internal/advisor/profile"
	"ShopAssistAI/app/services/advisor/internal/catalog"

	"github.com/zeromicro/go-zero/core/logx"
)

// TopN caps how many ranked matches a scan returns.
const TopN = 3

// NoBudgetMatchMessage marks the sentinel result returned when the budget
// filter leaves nothing. It is a defined outcome, not an error.
const NoBudgetMatchMessage = "No laptops found within your budget."

// FeatureExtractor derives a partial profile from an entry's feature text.
type FeatureExtractor interface {
	Extract(ctx context.Context, text string) (profile.Profile, error)
}

// Match is a catalog entry with its score against the user profile. Score
// counts the six non-Budget keys where the entry meets or exceeds the
// required level. A Match with Message set is the no-matches sentinel.
type Match struct {
	catalog.Entry
	Score   int    `json:"score"`
	Message string `json:"message,omitempty"`
}

// Engine scores catalog entries against a preference profile. It is a pure
// transform over an immutable catalog snapshot, safe for concurrent use
// across sessions.
type Engine struct {
	log       logx.Logger
	extractor FeatureExtractor
	topN      int
}

func NewEngine(logger logx.Logger, extractor FeatureExtractor) *Engine {
	return &Engine{
		log:       logger,
		extractor: extractor,
		topN:      TopN,
	}
}

// Match filters entries by budget, scores the survivors and returns the top
// ranked results, descending by score with ties in catalog order. An empty
// budget filter yields the single sentinel Match.
func (e *Engine) Match(ctx context.Context, prefs profile.Profile, entries []catalog.Entry) []Match {
	budget := int64(prefs.Budget)
	if budget <= 0 {
		budget = profile.MinimumBudget
		e.log.Infof("profile carries no usable budget, substituting floor %d", budget)
	}

	affordable := make([]catalog.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Price <= budget {
			affordable = append(affordable, entry)
		}
	}
	if len(affordable) == 0 {
		return []Match{{Message: NoBudgetMatchMessage}}
	}

	results := make([]Match, 0, len(affordable))
	for _, entry := range affordable {
		derived, err := e.extractor.Extract(ctx, entry.Features)
		if err != nil {
			// Per-entry isolation: score against an all-low baseline and
			// keep scanning.
			e.log.Errorf("feature extraction failed for %s %s: %v", entry.Brand, entry.Model, err)
			derived = profile.Profile{}
		}
		results = append(results, Match{
			Entry: entry,
			Score: scoreEntry(prefs, derived),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > e.topN {
		results = results[:e.topN]
	}
	return results
}

// NoneWithinBudget reports whether results is the budget-filter sentinel.
func NoneWithinBudget(results []Match) bool {
	return len(results) == 1 && results[0].Message != ""
}

func scoreEntry(user, derived profile.Profile) int {
	required := user.LevelValues()
	offered := derived.LevelValues()

	score := 0
	for i := range required {
		if offered[i].Meets(required[i]) {
			score++
		}
	}
	return score
}
