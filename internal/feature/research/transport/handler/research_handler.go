// Package handler はresearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"company_research/internal/api"
	"company_research/internal/feature/research/domain/entity"
)

// ResearchUsecase は企業調査のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ResearchUsecase interface {
	Research(ctx context.Context, input string) (*entity.CompanyProfile, error)
}

// ResearchHandler は企業調査のHTTPリクエストを処理します。
type ResearchHandler struct {
	uc ResearchUsecase
}

// NewResearchHandler はResearchHandlerの新しいインスタンスを生成します。
func NewResearchHandler(uc ResearchUsecase) *ResearchHandler {
	return &ResearchHandler{uc: uc}
}

// ResearchCompany は企業名またはティッカーから企業プロフィールを生成します。
//
// エンドポイント: POST /research_company
// Content-Type: application/json
//
// 調査のいずれかの段階が失敗した場合は、エラーメッセージとともに500を返します。
// 部分的なプロフィールは返しません。
func (h *ResearchHandler) ResearchCompany(c *gin.Context) {
	var req api.ResearchCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "research request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.CompanyInput) == "" {
		slog.WarnContext(c.Request.Context(), "research request without company_input", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "company_input is required"})
		return
	}

	slog.InfoContext(c.Request.Context(), "received research request", "company", req.CompanyInput)

	profile, err := h.uc.Research(c.Request.Context(), req.CompanyInput)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "research failed", "company", req.CompanyInput, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	slog.InfoContext(c.Request.Context(), "research succeeded", "company", req.CompanyInput)
	c.JSON(http.StatusOK, ToResponse(profile))
}

// ToResponse はドメインのプロフィールをAPIレスポンスに変換します。
func ToResponse(p *entity.CompanyProfile) api.ResearchCompanyResponse {
	sections := make(map[string]string, len(p.Sections))
	for k, v := range p.Sections {
		sections[k] = v
	}
	return api.ResearchCompanyResponse{
		Input:        p.Input,
		ResolvedInfo: p.ResolvedInfo,
		Timestamp:    api.FormatTimestamp(p.Timestamp),
		Sections:     sections,
	}
}
