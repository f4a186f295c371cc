package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ShopAssistAI/app/services/advisor/internal/advisor/gateway"
	"ShopAssistAI/app/services/advisor/internal/advisor/matching"
	"ShopAssistAI/app/services/advisor/internal/advisor/moderation"
	"ShopAssistAI/app/services/advisor/internal/advisor/profile"
	"ShopAssistAI/app/services/advisor/internal/catalog"

	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
)

// Gateway is the slice of the language-model client the orchestrator drives.
type Gateway interface {
	Complete(ctx context.Context, history []*schema.Message) (string, error)
	CompleteWithTools(ctx context.Context, history []*schema.Message, tools []*schema.ToolInfo, registry gateway.Registry) (string, error)
}

// Extractor converts free text into a preference profile.
type Extractor interface {
	Extract(ctx context.Context, text string) (profile.Profile, error)
}

// Confirmer judges whether candidate text amounts to a complete profile.
type Confirmer interface {
	Confirm(ctx context.Context, candidate string) (bool, error)
}

// Matcher ranks catalog entries against a profile.
type Matcher interface {
	Match(ctx context.Context, prefs profile.Profile, entries []catalog.Entry) []matching.Match
}

// TurnResult is what one handled user turn surfaces to the caller.
type TurnResult struct {
	SessionID       string
	State           State
	Reply           string
	Recommendations []matching.Match
	Flagged         bool
}

// Orchestrator drives the conversation state machine. All control decisions
// come from local state; the model only supplies text and structured
// content, never the next transition.
type Orchestrator struct {
	log       logx.Logger
	gw        Gateway
	filter    *moderation.Filter
	extractor Extractor
	confirmer Confirmer
	engine    Matcher
	entries   []catalog.Entry

	tools    []*schema.ToolInfo
	registry gateway.Registry
}

func NewOrchestrator(logger logx.Logger, gw Gateway, filter *moderation.Filter,
	extractor Extractor, confirmer Confirmer, engine Matcher, entries []catalog.Entry) *Orchestrator {

	o := &Orchestrator{
		log:       logger,
		gw:        gw,
		filter:    filter,
		extractor: extractor,
		confirmer: confirmer,
		engine:    engine,
		entries:   entries,
	}
	o.tools = buildToolInfos()
	o.registry = o.buildRegistry()
	return o
}

// Open initializes a session: seeds the system instruction, obtains the
// opening message and advances to GATHERING. Safe to call on a fresh or
// just-cleared session.
func (o *Orchestrator) Open(ctx context.Context, s *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return o.openLocked(ctx, s)
}

// Reset clears every piece of session state and replays the intro, per the
// RESET transition. The returned text is the fresh opening message.
func (o *Orchestrator) Reset(ctx context.Context, s *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
	return o.openLocked(ctx, s)
}

// HandleTurn processes one user utterance through moderation and the state
// machine. It never returns an error to the caller: every failure mode
// degrades to a conversational reply, and transient gateway failures leave
// the session untouched so the same turn can be retried.
func (o *Orchestrator) HandleTurn(ctx context.Context, s *Session, text string) TurnResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State == StateIntro || len(s.History) == 0 {
		o.openLocked(ctx, s)
	}

	if o.filter.Flagged(text) {
		o.log.Infof("session %s: utterance flagged by moderation, resetting", s.ID)
		s.clear()
		opening := o.openLocked(ctx, s)
		return TurnResult{
			SessionID: s.ID,
			State:     s.State,
			Reply:     flaggedNotice + "\n\n" + opening,
			Flagged:   true,
		}
	}

	if s.State == StateFollowup {
		return o.followupTurn(ctx, s, text)
	}
	return o.gatheringTurn(ctx, s, text)
}

func (o *Orchestrator) openLocked(ctx context.Context, s *Session) string {
	s.History = []*schema.Message{schema.SystemMessage(systemInstruction)}

	probe := append(cloneHistory(s.History), schema.UserMessage("Hello!"))
	opening, err := o.gw.Complete(ctx, probe)
	if err != nil || strings.TrimSpace(opening) == "" {
		if err != nil {
			o.log.Errorf("session %s: intro completion failed, using fixed opening: %v", s.ID, err)
		}
		opening = OpeningMessage
	}

	s.History = append(s.History, schema.AssistantMessage(opening, nil))
	s.State = StateGathering
	return opening
}

func (o *Orchestrator) gatheringTurn(ctx context.Context, s *Session, text string) TurnResult {
	userMsg := schema.UserMessage(text + "\n" + guardPrompt)

	// Stage the turn; commit only once the gateway has answered, so a
	// transient failure leaves the session replayable.
	staged := append(cloneHistory(s.History), userMsg)
	reply, err := o.gw.CompleteWithTools(ctx, staged, o.tools, o.registry)
	if err != nil {
		o.log.Errorf("session %s: gathering completion failed: %v", s.ID, err)
		return TurnResult{SessionID: s.ID, State: s.State, Reply: retryMessage}
	}
	s.History = append(s.History, userMsg)

	complete, err := o.confirmer.Confirm(ctx, reply)
	if err != nil {
		o.log.Errorf("session %s: intent confirmation failed: %v", s.ID, err)
		complete = false
	}
	if !complete {
		s.History = append(s.History, schema.AssistantMessage(reply, nil))
		return TurnResult{SessionID: s.ID, State: StateGathering, Reply: reply}
	}

	prefs, err := o.extractor.Extract(ctx, reply)
	if err != nil {
		// The structured pass already retried once; fall back to a
		// clarifying question and keep gathering.
		o.log.Errorf("session %s: preference extraction failed: %v", s.ID, err)
		s.History = append(s.History, schema.AssistantMessage(clarifyMessage, nil))
		return TurnResult{SessionID: s.ID, State: StateGathering, Reply: clarifyMessage}
	}

	s.State = StateMatching
	results := o.engine.Match(ctx, prefs, o.entries)

	if matching.NoneWithinBudget(results) {
		s.Profile = nil
		s.State = StateGathering
		s.History = append(s.History, schema.AssistantMessage(noBudgetMatchReply, nil))
		return TurnResult{SessionID: s.ID, State: StateGathering, Reply: noBudgetMatchReply}
	}

	validated := matching.Validate(results)
	if len(validated) == 0 {
		s.Profile = nil
		s.State = StateGathering
		s.History = append(s.History, schema.AssistantMessage(noQualityMatchReply, nil))
		return TurnResult{SessionID: s.ID, State: StateGathering, Reply: noQualityMatchReply}
	}

	s.Profile = &prefs
	s.Matches = validated
	s.State = StateRecommending

	summary := o.recommend(ctx, s, validated)
	s.History = append(s.History, schema.AssistantMessage(summary, nil))
	s.State = StateFollowup

	return TurnResult{
		SessionID:       s.ID,
		State:           StateFollowup,
		Reply:           summary,
		Recommendations: validated,
	}
}

// recommend seeds the summarization sub-conversation with the validated
// matches and asks for a human-readable ranked summary. Entered once per
// session; a gateway failure here degrades to a locally formatted list
// instead of abandoning the matches already computed.
func (o *Orchestrator) recommend(ctx context.Context, s *Session, validated []matching.Match) string {
	payload, _ := json.Marshal(validated)
	seed := []*schema.Message{
		schema.SystemMessage(recoSystemPrompt),
		schema.UserMessage(fmt.Sprintf("These are the user's laptops: %s", payload)),
	}

	summary, err := o.gw.Complete(ctx, seed)
	if err != nil || strings.TrimSpace(summary) == "" {
		if err != nil {
			o.log.Errorf("session %s: recommendation summary failed, formatting locally: %v", s.ID, err)
		}
		summary = formatMatches(validated)
	}

	s.Reco = append(seed, schema.AssistantMessage(summary, nil))
	return summary
}

func (o *Orchestrator) followupTurn(ctx context.Context, s *Session, text string) TurnResult {
	userMsg := schema.UserMessage(text)

	staged := append(cloneHistory(s.Reco), userMsg)
	reply, err := o.gw.Complete(ctx, staged)
	if err != nil {
		o.log.Errorf("session %s: followup completion failed: %v", s.ID, err)
		return TurnResult{SessionID: s.ID, State: StateFollowup, Reply: retryMessage}
	}

	s.Reco = append(s.Reco, userMsg, schema.AssistantMessage(reply, nil))
	return TurnResult{SessionID: s.ID, State: StateFollowup, Reply: reply}
}

func formatMatches(matches []matching.Match) string {
	var sb strings.Builder
	sb.WriteString("Here are the laptops that best match your requirements:\n")
	for i, m := range matches {
		name := strings.TrimSpace(m.Brand + " " + m.Model)
		if name == "" {
			name = "Laptop"
		}
		sb.WriteString(fmt.Sprintf("%d. %s at ₹%d (matched %d of 6 preferences)\n", i+1, name, m.Price, m.Score))
	}
	return strings.TrimSpace(sb.String())
}
