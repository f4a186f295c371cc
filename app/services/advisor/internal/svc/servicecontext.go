package svc

import (
	"context"
	"time"

	"ShopAssistAI/app/services/advisor/internal/advisor/conversation"
	"ShopAssistAI/app/services/advisor/internal/advisor/gateway"
	"ShopAssistAI/app/services/advisor/internal/advisor/matching"
	"ShopAssistAI/app/services/advisor/internal/advisor/moderation"
	"ShopAssistAI/app/services/advisor/internal/advisor/profile"
	"ShopAssistAI/app/services/advisor/internal/catalog"
	"ShopAssistAI/app/services/advisor/internal/config"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/zeromicro/go-zero/core/logx"
)

type ServiceContext struct {
	Config config.Config

	Orchestrator *conversation.Orchestrator
	Sessions     *conversation.Store
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)
	ctx := context.Background()
	logger := logx.WithContext(ctx)

	var chatModel model.ToolCallingChatModel
	cm, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL: c.ChatModel.BaseUrl,
		APIKey:  c.ChatModel.APIKey,
		Model:   c.ChatModel.Model,
	})
	if err != nil {
		logx.Errorw("init chat model failed", logx.Field("err", err))
	} else {
		chatModel = cm
		logx.Infow("chat model initialized", logx.Field("model", c.ChatModel.Model))
	}

	gw := gateway.NewClient(logger, chatModel, time.Duration(c.ChatModel.TimeoutSeconds)*time.Second)
	extractor := profile.NewExtractor(logger, gw)

	var confirmer *profile.Confirmer
	if chatModel != nil {
		confirmer, err = profile.NewConfirmer(ctx, logger, chatModel)
		if err != nil {
			logx.Errorw("init confirmer failed", logx.Field("err", err))
		}
	}

	cat := catalog.MustLoad(c.Catalog.Path)
	logx.Infow("catalog loaded", logx.Field("path", c.Catalog.Path), logx.Field("entries", cat.Len()))

	engine := matching.NewEngine(logger, extractor)
	filter := moderation.NewFilter(c.Moderation.BlockedTerms)

	sessions, err := conversation.NewStore(time.Duration(c.Session.TTLMinutes) * time.Minute)
	if err != nil {
		logx.Must(err)
	}

	return &ServiceContext{
		Config:       c,
		Orchestrator: conversation.NewOrchestrator(logger, gw, filter, extractor, confirmer, engine, cat.Entries()),
		Sessions:     sessions,
	}
}
