package server

import (
	"net/http"

	"bookcourier/internal/config"
	"bookcourier/internal/gateway"
	"bookcourier/internal/handler"
	appmw "bookcourier/internal/middleware"
	"bookcourier/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	User     *handler.UserHandler
	Book     *handler.BookHandler
	Order    *handler.OrderHandler
	Checkout *handler.CheckoutHandler
}

// echoを組み立ててルートを登録する
func New(cfg config.Config, verifier gateway.IdentityVerifier, userRepo repository.UserRepository, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))

	auth := appmw.BearerAuth(verifier)
	admin := appmw.AdminRoleGuard(userRepo)

	h.User.RegisterRoutes(e, auth, admin)
	h.Book.RegisterRoutes(e, auth)
	h.Order.RegisterRoutes(e, auth)
	h.Checkout.RegisterRoutes(e, auth)

	return e
}

func Start(e *echo.Echo, port string) error {
	addr := port
	if addr == "" {
		addr = "8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}
	return e.Start(addr)
}
