package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
)

type scriptedModel struct {
	reply *schema.Message
	err   error
	seen  []*schema.Message
}

func (s *scriptedModel) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	s.seen = in
	if s.err != nil {
		return nil, s.err
	}
	return s.reply, nil
}

func (s *scriptedModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not scripted")
}

func (s *scriptedModel) WithTools([]*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return s, nil
}

func verdictMessage(result string) *schema.Message {
	return schema.AssistantMessage("", []schema.ToolCall{{
		ID: "verdict-1",
		Function: schema.FunctionCall{
			Name:      confirmToolName,
			Arguments: `{"result": "` + result + `"}`,
		},
	}})
}

func newConfirmer(t *testing.T, m model.BaseChatModel) *Confirmer {
	t.Helper()
	c, err := NewConfirmer(context.Background(), logx.WithContext(context.Background()), m)
	require.NoError(t, err)
	return c
}

func TestConfirmYesVerdict(t *testing.T) {
	m := &scriptedModel{reply: verdictMessage("Yes")}
	c := newConfirmer(t, m)

	ok, err := c.Confirm(context.Background(), "a complete requirement dictionary")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, m.seen, 2)
	assert.Equal(t, schema.System, m.seen[0].Role)
	assert.Contains(t, m.seen[1].Content, "a complete requirement dictionary")
}

func TestConfirmNoVerdict(t *testing.T) {
	c := newConfirmer(t, &scriptedModel{reply: verdictMessage("No")})

	ok, err := c.Confirm(context.Background(), "missing half the keys")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmInlineAnswerFallback(t *testing.T) {
	reply := schema.AssistantMessage(`{"result": "yes"}`, nil)
	c := newConfirmer(t, &scriptedModel{reply: reply})

	ok, err := c.Confirm(context.Background(), "candidate")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmUndecodableReply(t *testing.T) {
	reply := schema.AssistantMessage("I cannot decide.", nil)
	c := newConfirmer(t, &scriptedModel{reply: reply})

	_, err := c.Confirm(context.Background(), "candidate")
	assert.Error(t, err)
}

func TestConfirmModelErrorPropagates(t *testing.T) {
	c := newConfirmer(t, &scriptedModel{err: errors.New("boom")})

	_, err := c.Confirm(context.Background(), "candidate")
	assert.Error(t, err)
}

func TestNewConfirmerRequiresModel(t *testing.T) {
	_, err := NewConfirmer(context.Background(), logx.WithContext(context.Background()), nil)
	assert.Error(t, err)
}

func TestNilConfirmerRefuses(t *testing.T) {
	var c *Confirmer
	_, err := c.Confirm(context.Background(), "anything")
	assert.Error(t, err)
}
