package conversation

import (
	"sync"

	"ShopAssistAI/app/services/advisor/internal/advisor/matching"
	"ShopAssistAI/app/services/advisor/internal/advisor/profile"

	"github.com/cloudwego/eino/schema"
)

// State names the orchestrator's resting and transient states.
type State string

const (
	StateIntro        State = "intro"
	StateGathering    State = "gathering"
	StateMatching     State = "matching"
	StateRecommending State = "recommending"
	StateFollowup     State = "followup"
)

// Session is the per-session state value. The orchestrator exclusively owns
// and mutates it; every turn runs under mu, so turns for one session are
// strictly sequential while independent sessions proceed in parallel.
type Session struct {
	mu sync.Mutex

	ID      string
	State   State
	History []*schema.Message

	Profile *profile.Profile
	Matches []matching.Match

	// Reco is the summarization sub-conversation seeded once on entering
	// RECOMMENDING and extended during FOLLOWUP.
	Reco []*schema.Message
}

func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		State: StateIntro,
	}
}

// clear wipes everything but the ID. Caller holds mu.
func (s *Session) clear() {
	s.State = StateIntro
	s.History = nil
	s.Profile = nil
	s.Matches = nil
	s.Reco = nil
}

func cloneHistory(history []*schema.Message) []*schema.Message {
	return append([]*schema.Message(nil), history...)
}
