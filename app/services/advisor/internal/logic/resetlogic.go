package logic

import (
	"context"

	"ShopAssistAI/app/services/advisor/internal/svc"
	"ShopAssistAI/app/services/advisor/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type ResetLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewResetLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ResetLogic {
	return &ResetLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Reset re-initializes the session and returns the fresh opening message.
func (l *ResetLogic) Reset(req *types.ResetRequest) (*types.ResetResponse, error) {
	sess := l.svcCtx.Sessions.FetchOrCreate(req.SessionID)
	opening := l.svcCtx.Orchestrator.Reset(l.ctx, sess)

	return &types.ResetResponse{
		SessionID: sess.ID,
		Reply:     opening,
	}, nil
}
