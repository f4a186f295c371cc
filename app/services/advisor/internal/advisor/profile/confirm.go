package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	confirmModelNodeKey = "confirm_model"
	confirmToolName     = "submit_requirements_verdict"
)

const confirmRubric = `You validate laptop requirement profiles. Check whether the input contains a
dictionary with all of these keys:
'GPU intensity', 'Display quality', 'Portability', 'Multitasking', 'Processing speed', 'Storage type', 'Budget'.
Values for all keys except Budget must be 'low', 'medium' or 'high'. Budget must be numeric.
Submit the verdict through the tool ` + confirmToolName + ` with result "Yes" when every
check passes, otherwise "No". Do not output any other text.`

type verdict struct {
	Result string `json:"result"`
}

func (v verdict) yes() bool {
	return strings.EqualFold(strings.TrimSpace(v.Result), "yes")
}

// Confirmer is the second model pass that judges whether a candidate
// requirement text amounts to a complete, well-typed profile. Extraction and
// validation fail differently, so this stays separate from the Extractor.
type Confirmer struct {
	log      logx.Logger
	runnable compose.Runnable[string, bool]
	tools    []*schema.ToolInfo
}

func NewConfirmer(ctx context.Context, logger logx.Logger, chatModel model.BaseChatModel) (*Confirmer, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	verdictTool := buildVerdictTool()
	tools := []*schema.ToolInfo{verdictTool}

	confirmModel := chatModel
	if toolCapable, ok := chatModel.(model.ToolCallingChatModel); ok {
		if modelWithTools, err := toolCapable.WithTools(tools); err != nil {
			logger.Errorf("bind verdict tool failed: %v", err)
		} else {
			confirmModel = modelWithTools
		}
	}

	chain := compose.NewChain[string, bool]()

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, candidate string) ([]*schema.Message, error) {
		return []*schema.Message{
			schema.SystemMessage(confirmRubric),
			schema.UserMessage(fmt.Sprintf("Input: %s", candidate)),
		}, nil
	}))

	chain.AppendChatModel(confirmModel, compose.WithNodeKey(confirmModelNodeKey))

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, msg *schema.Message) (bool, error) {
		if msg == nil {
			return false, fmt.Errorf("empty message")
		}

		payload := extractVerdictArguments(msg)
		if payload == "" {
			// Some models answer inline instead of calling the tool.
			payload = strings.TrimSpace(msg.Content)
		}
		if payload == "" {
			return false, fmt.Errorf("verdict payload missing")
		}

		var v verdict
		if err := json.Unmarshal([]byte(trimToObject(payload)), &v); err != nil {
			return false, fmt.Errorf("unmarshal verdict: %w", err)
		}
		return v.yes(), nil
	}))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, err
	}

	return &Confirmer{
		log:      logger,
		runnable: runnable,
		tools:    tools,
	}, nil
}

// Confirm returns true when the candidate text amounts to a complete profile.
func (c *Confirmer) Confirm(ctx context.Context, candidate string) (bool, error) {
	if c == nil || c.runnable == nil {
		return false, fmt.Errorf("confirmer unavailable")
	}

	var opts []compose.Option
	if len(c.tools) > 0 {
		opt := compose.WithChatModelOption(
			model.WithTools(c.tools),
			model.WithToolChoice(schema.ToolChoiceForced),
		).DesignateNode(confirmModelNodeKey)
		opts = append(opts, opt)
	}

	return c.runnable.Invoke(ctx, candidate, opts...)
}

func extractVerdictArguments(msg *schema.Message) string {
	for _, call := range msg.ToolCalls {
		if strings.EqualFold(call.Function.Name, confirmToolName) {
			return strings.TrimSpace(call.Function.Arguments)
		}
	}
	return ""
}

func trimToObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start > end {
		return content
	}
	return content[start : end+1]
}

func buildVerdictTool() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: confirmToolName,
		Desc: "Submit the completeness verdict for a laptop requirement profile",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"result": {
				Type:     schema.String,
				Desc:     "Yes when all seven keys are present and well-typed, otherwise No",
				Enum:     []string{"Yes", "No"},
				Required: true,
			},
		}),
	}
}
