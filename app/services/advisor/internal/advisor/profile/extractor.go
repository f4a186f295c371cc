package profile

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
)

const extractionPrompt = `Extract a JSON dictionary from the text with exactly these keys:
'GPU intensity', 'Display quality', 'Portability', 'Multitasking', 'Processing speed', 'Storage type', 'Budget'.
Values for all keys except Budget must be lowercase 'low', 'medium' or 'high'.
Budget must be numeric, in INR; convert dollar amounts at 1 USD = 83 INR.
Leave out any key you cannot infer from the text. Output JSON only, no explanation.`

// StructuredCompleter is the slice of the gateway the extractor needs.
type StructuredCompleter interface {
	CompleteStructured(ctx context.Context, history []*schema.Message, out any) error
}

// Extractor converts free-form text into a Profile through the gateway's
// structured mode. It does not judge completeness; keys the model cannot
// infer stay zero-valued.
type Extractor struct {
	log logx.Logger
	gw  StructuredCompleter
}

func NewExtractor(logger logx.Logger, gw StructuredCompleter) *Extractor {
	return &Extractor{
		log: logger,
		gw:  gw,
	}
}

func (e *Extractor) Extract(ctx context.Context, text string) (Profile, error) {
	messages := []*schema.Message{
		schema.SystemMessage(extractionPrompt),
		schema.UserMessage(fmt.Sprintf("Input text: %s", text)),
	}

	var p Profile
	if err := e.gw.CompleteStructured(ctx, messages, &p); err != nil {
		return Profile{}, fmt.Errorf("extract preferences: %w", err)
	}
	return p, nil
}
