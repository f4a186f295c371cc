package conversation

import (
	"context"
	"encoding/json"
	"fmt"

	"ShopAssistAI/app/services/advisor/internal/advisor/gateway"

	"github.com/cloudwego/eino/schema"
)

const (
	toolExtractPreferences = "extract_preferences"
	toolMatchCatalog       = "match_catalog"
)

// buildToolInfos declares the two local functions the model may request
// while composing a reply. The declarations only feed data back into the
// conversation; state transitions stay locally owned.
func buildToolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: toolExtractPreferences,
			Desc: "Extracts the structured laptop preference profile from assistant or user text.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"text": {
					Type:     schema.String,
					Desc:     "The text to extract preferences from",
					Required: true,
				},
			}),
		},
		{
			Name: toolMatchCatalog,
			Desc: "Compares user requirements with the laptop catalog and returns the top ranked matches.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_requirements_text": {
					Type:     schema.String,
					Desc:     "Free-text description of the user's laptop requirements",
					Required: true,
				},
			}),
		},
	}
}

func (o *Orchestrator) buildRegistry() gateway.Registry {
	return gateway.Registry{
		toolExtractPreferences: func(ctx context.Context, args string) (string, error) {
			var in struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal([]byte(args), &in); err != nil {
				return "", fmt.Errorf("parse arguments: %w", err)
			}
			prefs, err := o.extractor.Extract(ctx, in.Text)
			if err != nil {
				return "", err
			}
			payload, err := json.Marshal(prefs)
			return string(payload), err
		},
		toolMatchCatalog: func(ctx context.Context, args string) (string, error) {
			var in struct {
				Requirements string `json:"user_requirements_text"`
			}
			if err := json.Unmarshal([]byte(args), &in); err != nil {
				return "", fmt.Errorf("parse arguments: %w", err)
			}
			prefs, err := o.extractor.Extract(ctx, in.Requirements)
			if err != nil {
				return "", err
			}
			results := o.engine.Match(ctx, prefs, o.entries)
			payload, err := json.Marshal(results)
			return string(payload), err
		},
	}
}
