// Package router はHTTPルーティングを構成します。
package router

import (
	"github.com/gin-gonic/gin"

	researchhandler "company_research/internal/feature/research/transport/handler"
	"company_research/internal/platform/http/handler"
	"company_research/internal/platform/http/middleware"
	jwtmw "company_research/internal/platform/jwt"
)

// Options は任意で有効になるミドルウェアの設定です。
type Options struct {
	// Limiter がnilでなければ /research_company にレート制限をかけます。
	Limiter middleware.Limiter
	// JWTSecret が空でなければ /research_company にBearer認証を要求します。
	JWTSecret string
}

// NewRouter はルートとミドルウェアを登録したgin.Engineを返します。
func NewRouter(research *researchhandler.ResearchHandler, health *handler.HealthHandler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	// 認証不要
	// 導通確認用
	for _, path := range []string{"/health", "/healthz"} {
		r.GET(path, health.Health)
		r.HEAD(path, health.Health)
		r.OPTIONS(path, health.Health)
	}

	// 1リクエストで多数の外部API呼び出しが発生するため、制限と認証はこのルートにだけ適用
	chain := make([]gin.HandlerFunc, 0, 3)
	if opts.Limiter != nil {
		chain = append(chain, middleware.RateLimit(opts.Limiter))
	}
	if opts.JWTSecret != "" {
		chain = append(chain, jwtmw.AuthRequired(opts.JWTSecret))
	}
	chain = append(chain, research.ResearchCompany)
	r.POST("/research_company", chain...)

	return r
}
