package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
)

const maxToolIterations = 4

var (
	// ErrUnavailable covers transport failures and timeouts. Callers surface
	// it as a retryable condition and leave session state untouched.
	ErrUnavailable = errors.New("language model unavailable")

	// ErrMalformedReply means the model returned output that could not be
	// decoded as the requested structure, even after one retry.
	ErrMalformedReply = errors.New("malformed structured reply")
)

// Client is the uniform call surface over a remote chat completion model.
// It never mutates a passed-in history; tool-result continuations happen on
// an internal copy and only the final text is returned.
type Client struct {
	log     logx.Logger
	model   model.ToolCallingChatModel
	timeout time.Duration
}

func NewClient(logger logx.Logger, m model.ToolCallingChatModel, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		log:     logger,
		model:   m,
		timeout: timeout,
	}
}

// Complete sends the history and returns the model's text reply.
func (c *Client) Complete(ctx context.Context, history []*schema.Message) (string, error) {
	reply, err := c.generate(ctx, c.model, history)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply.Content), nil
}

// CompleteStructured sends the history and decodes the reply's outermost
// JSON object into out. A malformed reply is retried once with the same
// prompt before surfacing ErrMalformedReply.
func (c *Client) CompleteStructured(ctx context.Context, history []*schema.Message, out any) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		reply, err := c.generate(ctx, c.model, history)
		if err != nil {
			return err
		}
		if err := DecodeJSON(reply.Content, out); err != nil {
			lastErr = err
			c.log.Errorf("structured reply decode failed (attempt %d): %v", attempt+1, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrMalformedReply, lastErr)
}

// ToolFunc executes a locally owned function with the raw JSON arguments the
// model supplied and returns a JSON result for the tool-result turn.
type ToolFunc func(ctx context.Context, args string) (string, error)

// Registry maps declared tool names to their local implementations.
type Registry map[string]ToolFunc

func (r Registry) execute(ctx context.Context, name, args string) (string, error) {
	fn, ok := r[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}
	return fn(ctx, args)
}

// CompleteWithTools declares the tools to the model and runs the tool
// protocol: each tool call is executed through the registry, its JSON result
// fed back as a role=tool turn, and the model re-invoked until it produces a
// natural-language answer or the iteration bound is hit.
func (c *Client) CompleteWithTools(ctx context.Context, history []*schema.Message, tools []*schema.ToolInfo, registry Registry) (string, error) {
	if c.model == nil {
		return "", ErrUnavailable
	}

	invoker := model.BaseChatModel(c.model)
	if len(tools) > 0 {
		toolModel, err := c.model.WithTools(tools)
		if err != nil {
			return "", fmt.Errorf("bind tools: %w", err)
		}
		invoker = toolModel
	}

	messages := append([]*schema.Message(nil), history...)
	var finalMsg *schema.Message

	for i := 0; i < maxToolIterations; i++ {
		reply, err := c.generate(ctx, invoker, messages)
		if err != nil {
			return "", err
		}

		messages = append(messages, reply)

		if len(reply.ToolCalls) == 0 {
			finalMsg = reply
			break
		}

		for _, call := range reply.ToolCalls {
			content, err := registry.execute(ctx, call.Function.Name, call.Function.Arguments)
			if err != nil {
				c.log.Errorf("tool %s execution error: %v", call.Function.Name, err)
				payload, _ := json.Marshal(map[string]string{"error": err.Error()})
				content = string(payload)
			}
			messages = append(messages, schema.ToolMessage(content, enforceToolCallID(call), schema.WithToolName(call.Function.Name)))
		}
	}

	if finalMsg == nil {
		return "", fmt.Errorf("%w: no final answer within %d tool iterations", ErrMalformedReply, maxToolIterations)
	}
	return strings.TrimSpace(finalMsg.Content), nil
}

func (c *Client) generate(ctx context.Context, m model.BaseChatModel, messages []*schema.Message) (*schema.Message, error) {
	if m == nil {
		return nil, ErrUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := m.Generate(callCtx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if reply == nil {
		return nil, fmt.Errorf("%w: model returned empty message", ErrUnavailable)
	}
	return reply, nil
}

// DecodeJSON unmarshals the outermost JSON object embedded in content,
// tolerating prose or code fences around it.
func DecodeJSON(content string, out any) error {
	clean := trimJSONBlock(strings.TrimSpace(content))
	if clean == "" {
		return errors.New("empty reply")
	}
	return json.Unmarshal([]byte(clean), out)
}

func trimJSONBlock(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start > end {
		return content
	}
	return content[start : end+1]
}

func enforceToolCallID(call schema.ToolCall) string {
	if call.ID != "" {
		return call.ID
	}
	return fmt.Sprintf("call-%d", time.Now().UnixNano())
}
