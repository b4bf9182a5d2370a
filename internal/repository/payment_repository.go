package repository

import (
	"context"
	"errors"

	"bookcourier/internal/domain/model"
)

// transaction_id一意制約に当たったとき
var ErrDuplicateTransaction = errors.New("duplicate transaction")

type PaymentRepository interface {
	//同じtransactionIdがあれば再処理しない（検索）
	FindByTransactionID(ctx context.Context, transactionID string) (model.Payment, bool, error)
	//一意制約違反は ErrDuplicateTransaction を返す
	Create(ctx context.Context, p model.Payment) error
	//顧客として支払った一覧
	ListByCustomerEmail(ctx context.Context, email string) ([]model.Payment, error)
	//著者として受け取った一覧
	ListByAuthorEmail(ctx context.Context, email string) ([]model.Payment, error)
}
