package middleware

import (
	"net/http"
	"strings"

	"bookcourier/internal/gateway"

	"github.com/labstack/echo/v4"
)

const (
	CtxEmailKey = "auth_email" // string
)

// bearerAuth用の検証ミドルウェア。
// 検証器が返したメールをcontextへ入れる。
func BearerAuth(verifier gateway.IdentityVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//外部IDプロバイダの主張だけを信用する
			email, err := verifier.Verify(c.Request().Context(), rawToken)
			if err != nil || email == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxEmailKey, email)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// BearerAuthが入れたメールを取り出す
func EmailFromContext(c echo.Context) (string, bool) {
	raw := c.Get(CtxEmailKey)
	email, ok := raw.(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
