package middleware

import (
	"net/http"

	"bookcourier/internal/domain/model"
	"bookcourier/internal/repository"

	"github.com/labstack/echo/v4"
)

//contextのメールで最新ロールを引いてadminかどうかを確認します。

func AdminRoleGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := EmailFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する（トークンのロールは信用しない）
			user, err := userRepo.FindByEmail(c.Request().Context(), email)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//customer/authorは拒否、adminだけ許可
			if user.Role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
