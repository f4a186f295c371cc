package handler

import (
	"net/http"

	"ShopAssistAI/app/common/consts/errno"
	"ShopAssistAI/app/common/response"
	"ShopAssistAI/app/services/advisor/internal/logic"
	"ShopAssistAI/app/services/advisor/internal/svc"
	"ShopAssistAI/app/services/advisor/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func ResetHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ResetRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewResetLogic(r.Context(), svcCtx)
		resp, err := l.Reset(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, response.NewResponseWithData(errno.StatusOK, "ok", resp))
		}
	}
}
