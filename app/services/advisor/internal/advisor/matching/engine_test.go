package matching

import (
	"context"
	"errors"
	"testing"

	"ShopAssistAI/app/services/advisor/internal/advisor/profile"
	"ShopAssistAI/app/services/advisor/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
)

type stubExtractor struct {
	profiles map[string]profile.Profile
	failOn   string
}

func (s *stubExtractor) Extract(_ context.Context, text string) (profile.Profile, error) {
	if s.failOn != "" && text == s.failOn {
		return profile.Profile{}, errors.New("derivation failed")
	}
	return s.profiles[text], nil
}

func allHigh() profile.Profile {
	return profile.Profile{
		GPUIntensity:    profile.LevelHigh,
		DisplayQuality:  profile.LevelHigh,
		Portability:     profile.LevelHigh,
		Multitasking:    profile.LevelHigh,
		ProcessingSpeed: profile.LevelHigh,
		StorageType:     profile.Level("SSD"),
	}
}

func levels(gpu, display, portability, multitasking, speed profile.Level) profile.Profile {
	return profile.Profile{
		GPUIntensity:    gpu,
		DisplayQuality:  display,
		Portability:     portability,
		Multitasking:    multitasking,
		ProcessingSpeed: speed,
		StorageType:     profile.Level("SSD"),
	}
}

func newEngine(extractor FeatureExtractor) *Engine {
	return NewEngine(logx.WithContext(context.Background()), extractor)
}

func TestMatchScenarioAllHighScoresSix(t *testing.T) {
	user := allHigh()
	user.Portability = profile.LevelMedium
	user.Budget = 80000

	entries := []catalog.Entry{
		{Brand: "ASUS", Model: "ROG", Price: 75000, Features: "rog-features"},
	}
	engine := newEngine(&stubExtractor{profiles: map[string]profile.Profile{
		"rog-features": allHigh(),
	}})

	results := engine.Match(context.Background(), user, entries)
	require.Len(t, results, 1)
	assert.Equal(t, 6, results[0].Score)
	assert.Equal(t, "ASUS", results[0].Brand)

	validated := Validate(results)
	require.Len(t, validated, 1)
}

func TestMatchDeterministic(t *testing.T) {
	user := levels(profile.LevelHigh, profile.LevelMedium, profile.LevelLow, profile.LevelMedium, profile.LevelHigh)
	user.Budget = 100000

	entries := []catalog.Entry{
		{Model: "a", Price: 50000, Features: "a"},
		{Model: "b", Price: 60000, Features: "b"},
	}
	extractor := &stubExtractor{profiles: map[string]profile.Profile{
		"a": levels(profile.LevelHigh, profile.LevelHigh, profile.LevelHigh, profile.LevelHigh, profile.LevelHigh),
		"b": levels(profile.LevelLow, profile.LevelMedium, profile.LevelLow, profile.LevelLow, profile.LevelLow),
	}}
	engine := newEngine(extractor)

	first := engine.Match(context.Background(), user, entries)
	second := engine.Match(context.Background(), user, entries)
	assert.Equal(t, first, second)
}

func TestMatchTopThreeSortedDescending(t *testing.T) {
	user := levels(profile.LevelMedium, profile.LevelMedium, profile.LevelMedium, profile.LevelMedium, profile.LevelMedium)
	user.Budget = 100000

	entries := []catalog.Entry{
		{Model: "weak", Price: 10000, Features: "weak"},
		{Model: "strong", Price: 20000, Features: "strong"},
		{Model: "mid1", Price: 30000, Features: "mid1"},
		{Model: "mid2", Price: 40000, Features: "mid2"},
		{Model: "weak2", Price: 50000, Features: "weak2"},
	}
	extractor := &stubExtractor{profiles: map[string]profile.Profile{
		"weak":   {},
		"strong": allHigh(),
		"mid1":   levels(profile.LevelMedium, profile.LevelMedium, profile.LevelLow, profile.LevelLow, profile.LevelMedium),
		"mid2":   levels(profile.LevelMedium, profile.LevelMedium, profile.LevelLow, profile.LevelLow, profile.LevelMedium),
		"weak2":  {},
	}}
	engine := newEngine(extractor)

	results := engine.Match(context.Background(), user, entries)
	require.Len(t, results, TopN)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, "strong", results[0].Model)
	// equal scores retain catalog order
	assert.Equal(t, "mid1", results[1].Model)
	assert.Equal(t, "mid2", results[2].Model)
}

func TestBudgetFilterMonotonic(t *testing.T) {
	entries := []catalog.Entry{
		{Model: "a", Price: 30000, Features: "a"},
		{Model: "b", Price: 60000, Features: "b"},
		{Model: "c", Price: 90000, Features: "c"},
	}
	extractor := &stubExtractor{profiles: map[string]profile.Profile{}}
	engine := newEngine(extractor)

	user := profile.Profile{}
	counts := make([]int, 0, 3)
	for _, budget := range []profile.Rupees{30000, 60000, 90000} {
		user.Budget = budget
		results := engine.Match(context.Background(), user, entries)
		require.False(t, NoneWithinBudget(results))
		counts = append(counts, len(results))
	}
	for i := 1; i < len(counts); i++ {
		assert.GreaterOrEqual(t, counts[i], counts[i-1])
	}
}

func TestMatchSentinelWhenNothingAffordable(t *testing.T) {
	entries := []catalog.Entry{
		{Model: "pricey", Price: 200000, Features: "pricey"},
	}
	engine := newEngine(&stubExtractor{})

	user := profile.Profile{Budget: 50000}
	results := engine.Match(context.Background(), user, entries)

	require.Len(t, results, 1)
	assert.True(t, NoneWithinBudget(results))
	assert.Equal(t, NoBudgetMatchMessage, results[0].Message)
}

func TestMatchMissingBudgetUsesFloor(t *testing.T) {
	entries := []catalog.Entry{
		{Model: "cheap", Price: 20000, Features: "cheap"},
		{Model: "pricey", Price: 30000, Features: "pricey"},
	}
	engine := newEngine(&stubExtractor{})

	results := engine.Match(context.Background(), profile.Profile{}, entries)
	require.Len(t, results, 1)
	assert.Equal(t, "cheap", results[0].Model)
}

func TestMatchExtractionFailureIsolation(t *testing.T) {
	user := levels(profile.LevelHigh, profile.LevelHigh, profile.LevelHigh, profile.LevelHigh, profile.LevelHigh)
	user.Budget = 100000

	entries := []catalog.Entry{
		{Model: "broken", Price: 40000, Features: "broken"},
		{Model: "good", Price: 50000, Features: "good"},
	}
	extractor := &stubExtractor{
		profiles: map[string]profile.Profile{"good": allHigh()},
		failOn:   "broken",
	}
	engine := newEngine(extractor)

	results := engine.Match(context.Background(), user, entries)
	require.Len(t, results, 2)
	assert.Equal(t, "good", results[0].Model)
	assert.Equal(t, 6, results[0].Score)
	// the failed entry scores against an all-low baseline: only the
	// unrecognized storage requirement (rank 0) is met
	assert.Equal(t, "broken", results[1].Model)
	assert.Equal(t, 1, results[1].Score)
}
