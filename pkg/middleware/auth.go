package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/devchat/pkg/apierror"
)

// BearerAuth は静的な共有トークンを検証するGinミドルウェアを返す。
// Authorizationヘッダーの "Bearer <token>" を期待値と完全一致で比較する。
// トークンに有効期限やユーザー識別子は無く、プロセス全体で1つの値のみを受け付ける。
func BearerAuth(expectedToken string) gin.HandlerFunc {
	expected := []byte(expectedToken)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(apierror.Unauthorized("Not authenticated"))
			c.Abort()
			return
		}

		token, found := cutBearerPrefix(authHeader)
		if !found {
			_ = c.Error(apierror.Unauthorized("Invalid authentication credentials"))
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			_ = c.Error(apierror.Unauthorized("Invalid authentication token"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// cutBearerPrefix はAuthorizationヘッダーからBearerスキームを取り除く。
// スキーム名の大文字小文字は区別しない。
func cutBearerPrefix(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return token, true
}
