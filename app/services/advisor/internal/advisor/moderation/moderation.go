package moderation

import "strings"

// DefaultTerms is the disallowed-term list applied when none is configured.
var DefaultTerms = []string{"violence", "illegal", "hack"}

// Filter flags utterances containing any disallowed term, matched as a
// case-insensitive substring. Deliberately simple: a flag is a hard stop for
// the conversation, not a logged warning.
type Filter struct {
	terms []string
}

func NewFilter(terms []string) *Filter {
	if len(terms) == 0 {
		terms = DefaultTerms
	}
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	return &Filter{terms: lowered}
}

// Flagged reports whether the utterance contains a disallowed term.
func (f *Filter) Flagged(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, term := range f.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
