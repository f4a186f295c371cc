package handler

import (
	"net/http"

	"ShopAssistAI/app/services/advisor/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/advisor/chat",
				Handler: ChatHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/advisor/reset",
				Handler: ResetHandler(serverCtx),
			},
		},
	)
}
