package logic

import (
	"context"
	"strings"

	"ShopAssistAI/app/common/consts/errno"
	"ShopAssistAI/app/services/advisor/internal/svc"
	"ShopAssistAI/app/services/advisor/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type ChatLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChatLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatLogic {
	return &ChatLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Chat submits one user utterance to the session's orchestrator.
func (l *ChatLogic) Chat(req *types.ChatRequest) (*types.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errors.New(int(errno.InvalidParam), "message is required")
	}

	sess := l.svcCtx.Sessions.FetchOrCreate(req.SessionID)
	result := l.svcCtx.Orchestrator.HandleTurn(l.ctx, sess, message)

	resp := &types.ChatResponse{
		SessionID: result.SessionID,
		State:     string(result.State),
		Reply:     result.Reply,
	}
	for _, m := range result.Recommendations {
		resp.Recommendations = append(resp.Recommendations, types.Recommendation{
			Brand: m.Brand,
			Model: m.Model,
			Price: m.Price,
			Score: m.Score,
		})
	}
	return resp, nil
}
