package gateway

import (
	"context"
	"errors"
)

// セッションIDが解決できないとき
var ErrSessionNotFound = errors.New("session not found")

// ホスト型決済セッションの作成依頼
type CreateSessionInput struct {
	OrderID       string
	BookName      string
	CustomerEmail string
	//主要通貨単位（ゲートウェイ側で×100する）
	UnitPrice  float64
	SuccessURL string
	CancelURL  string
}

// ゲートウェイから取り直したセッションの中身
type Session struct {
	ID string
	//"paid" / "unpaid"
	PaymentStatus string
	//payment intent（冪等性キーとして使う）
	TransactionID string
	//最小通貨単位（centなど）
	AmountTotal   int64
	CustomerEmail string
	OrderID       string
}

// 決済プロバイダの約束。実装はinfra/checkout。
type CheckoutGateway interface {
	//リダイレクト先URLを返す
	CreateSession(ctx context.Context, in CreateSessionInput) (string, error)
	RetrieveSession(ctx context.Context, sessionID string) (Session, error)
}
