// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"company_research/internal/api"
)

// HealthHandler は /health エンドポイントを処理します。
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler はHealthHandlerを生成します。
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Health はサービスの稼働状態と現在時刻を返します。
// HEADは200、OPTIONSは204をボディなしで返し、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{
			Status:    api.HealthStatusHealthy,
			Timestamp: api.FormatTimestamp(h.now()),
		})
	}
}
