package main

import (
	"log"

	"bookcourier/internal/config"
	"bookcourier/internal/domain/model"
	"bookcourier/internal/gateway"
	"bookcourier/internal/handler"
	"bookcourier/internal/infra/checkout"
	"bookcourier/internal/infra/db"
	"bookcourier/internal/infra/identity"
	infraRepo "bookcourier/internal/infra/repository"
	"bookcourier/internal/server"
	"bookcourier/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数だけ）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Book{},
		&model.Order{},
		&model.Payment{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	bookRepo := infraRepo.NewBookGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部コラボレーター
	gw := checkout.NewStripeGateway(cfg.StripeSecretKey)

	var verifier gateway.IdentityVerifier
	if cfg.AuthMode == "local" {
		verifier = identity.NewLocalVerifier(cfg.JWTSecret)
	} else {
		verifier = identity.NewGoogleVerifier(cfg.GoogleClientID)
	}

	//Usecase生成
	userUC := usecase.NewUserUsecase(userRepo)
	bookUC := usecase.NewBookUsecase(bookRepo, userRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, bookRepo, userRepo)
	checkoutUC := usecase.NewCheckoutUsecase(gw, txManager, orderRepo, paymentRepo, cfg.ClientOrigin)

	//Handler生成
	h := server.Handlers{
		User:     handler.NewUserHandler(userUC),
		Book:     handler.NewBookHandler(bookUC),
		Order:    handler.NewOrderHandler(orderUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
	}

	//Server起動
	e := server.New(cfg, verifier, userRepo, h)
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
