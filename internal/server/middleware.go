package server

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダー
const RequestIDHeader = "X-Request-ID"

// requestID はリクエストIDを付与するミドルウェア
// クライアントが指定したIDがあればそれを使い、なければ新しく生成する
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
