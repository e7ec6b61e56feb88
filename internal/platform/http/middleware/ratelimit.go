package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"company_research/internal/api"
)

// Limiter は1クライアントあたりのリクエスト可否を判定します。
type Limiter interface {
	Allow(ctx context.Context, client string) (bool, error)
}

// RateLimit はクライアントIPごとにリクエスト数を制限します。
// Limiterがエラーを返した場合は許可し、警告ログを出します。
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		allowed, err := l.Allow(c.Request.Context(), client)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable, allowing request", "client_ip", client, "error", err)
		}
		if !allowed {
			slog.WarnContext(c.Request.Context(), "rate limit exceeded", "client_ip", client, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
