package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/devchat/pkg/apierror"
)

// ErrorResponder はハンドラが登録したエラーをHTTPレスポンスに変換するGinミドルウェアを返す。
// エラー種別からステータスコードへの変換はここでのみ行う。
// 内部エラーの原因はログに出力し、クライアントには汎用メッセージのみを返す。
func ErrorResponder(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		apiErr := apierror.From(last.Err)
		switch apiErr.Kind {
		case apierror.KindUnauthorized:
			c.Header("WWW-Authenticate", "Bearer")
		case apierror.KindInternal:
			logger.Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c),
				"error", apiErr.Error(),
			)
		}

		c.AbortWithStatusJSON(apiErr.Kind.StatusCode(), gin.H{
			"error":  apiErr.Kind.String(),
			"detail": apiErr.Message,
		})
	}
}
